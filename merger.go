package chtl

import "strings"

// MergeInput carries the three artifact streams into the final splice.
type MergeInput struct {
	HTML string
	CSS  string
	JS   string
}

// Merge assembles the final document by textual splicing: CSS goes into a
// <style> block immediately before the first </head>, JS into a <script>
// block immediately before </body>. No DOM parsing happens here; the HTML
// is exactly what the CHTL compiler emitted.
func Merge(in MergeInput) string {
	out := in.HTML

	if in.CSS != "" {
		block := "<style>\n" + in.CSS + "\n</style>\n"
		if i := indexTagFold(out, "</head>"); i >= 0 {
			out = out[:i] + block + out[i:]
		} else {
			out = block + out
		}
	}

	if in.JS != "" {
		block := "<script>\n" + in.JS + "\n</script>\n"
		if i := indexTagFold(out, "</body>"); i >= 0 {
			out = out[:i] + block + out[i:]
		} else {
			out = out + block
		}
	}

	return out
}

// indexTagFold finds the first case-insensitive occurrence of the exact tag
// form.
func indexTagFold(s, tag string) int {
	lower := strings.ToLower(s)
	return strings.Index(lower, strings.ToLower(tag))
}
