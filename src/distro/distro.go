// Package distro builds the inventory of registered WSL distributions and
// renames them in the backing store.
package distro

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Distro is one registered distribution as seen by a single List call.
// ID, TotalBytes, LastAccess and IsDefault are derived and never persisted.
type Distro struct {
	ID                int       `json:"id" yaml:"id"`
	InstanceKey       uuid.UUID `json:"instanceKey" yaml:"instanceKey"`
	Name              string    `json:"name" yaml:"name"`
	PackageFamilyName string    `json:"packageFamilyName,omitempty" yaml:"packageFamilyName,omitempty"`
	BasePath          string    `json:"basePath,omitempty" yaml:"basePath,omitempty"`
	TotalBytes        int64     `json:"totalBytes" yaml:"totalBytes"`
	LastAccess        time.Time `json:"lastAccess,omitzero" yaml:"lastAccess,omitempty"`
	IsDefault         bool      `json:"default" yaml:"default"`
}

// HasLastAccess reports whether a virtual disk was found for the distro.
func (d Distro) HasLastAccess() bool { return !d.LastAccess.IsZero() }

// TotalSpace renders TotalBytes in binary units.
func (d Distro) TotalSpace() string { return FormatBytes(d.TotalBytes) }

// LastAccessAgo renders LastAccess relative to now.
func (d Distro) LastAccessAgo(now time.Time) string {
	return FormatLastAccess(d.LastAccess, d.HasLastAccess(), now)
}

const (
	kib = 1024
	mib = kib * 1024
	gib = mib * 1024
	tib = gib * 1024
)

// FormatBytes renders b with 1024-based units: whole bytes below 1 KiB,
// otherwise two decimals of KiB, MiB, GiB or TiB.
func FormatBytes(b int64) string {
	switch {
	case b < kib:
		return fmt.Sprintf("%d bytes", b)
	case b < mib:
		return fmt.Sprintf("%.2f KiB", float64(b)/kib)
	case b < gib:
		return fmt.Sprintf("%.2f MiB", float64(b)/mib)
	case b < tib:
		return fmt.Sprintf("%.2f GiB", float64(b)/gib)
	}
	return fmt.Sprintf("%.2f TiB", float64(b)/tib)
}

const day = 24 * time.Hour

// FormatLastAccess renders how long ago t was, relative to now. ok=false
// means no access time is known.
func FormatLastAccess(t time.Time, ok bool, now time.Time) string {
	if !ok || t.IsZero() {
		return "never"
	}
	elapsed := now.Sub(t)
	days := int64(elapsed / day)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%.0f minutes ago", math.Round(elapsed.Minutes()))
	case elapsed < day:
		return fmt.Sprintf("%.0f hours ago", math.Round(elapsed.Hours()))
	case elapsed < 2*day:
		return "1 day ago"
	case elapsed < 30*day:
		return fmt.Sprintf("%d days ago", days)
	case elapsed < 365*day:
		return fmt.Sprintf("%d months ago", days/30)
	}
	return fmt.Sprintf("%.1f years ago", math.Floor(float64(days)/365.25))
}

// FindByID returns the distro with the given listing ID.
func FindByID(ds []Distro, id int) (Distro, bool) {
	for _, d := range ds {
		if d.ID == id {
			return d, true
		}
	}
	return Distro{}, false
}

// FindByKey returns the distro registered under key.
func FindByKey(ds []Distro, key uuid.UUID) (Distro, bool) {
	for _, d := range ds {
		if d.InstanceKey == key {
			return d, true
		}
	}
	return Distro{}, false
}

var discard = log.New(io.Discard)

func orDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return discard
	}
	return l
}
