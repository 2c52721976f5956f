package output

import (
	"io"

	"github.com/common-nighthawk/go-figure"
)

// Banner writes the dashboard title as ASCII art.
func Banner(w io.Writer, title string) {
	fig := figure.NewFigure(title, "cybermedium", true)
	for _, line := range fig.Slicify() {
		io.WriteString(w, line+"\n")
	}
}
