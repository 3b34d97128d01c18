package cli

import (
	"fmt"
	"io"

	"whistler/src/version"
)

func printBanner(w io.Writer, st styles) {
	fmt.Fprintf(w, "%s %s\n", st.title.Render(version.Title), st.muted.Render("-- "+version.Description))
	fmt.Fprintf(w, "%s %s\n", st.muted.Render("Ver:"), st.title.Render(version.Version))
	fmt.Fprintf(w, "%s\n", st.muted.Render(version.License))
	fmt.Fprintf(w, "%s %s\n\n", st.muted.Render("Project URL:"), version.ProjectURL)
}
