package render

// StripClasses returns the CSS classes of thumbnail i in a frame strip.
// Every thumbnail is a "frame"; the one being edited is also
// "frame-current", and while the animation runs the one shown in the
// preview is also "preview-current".
func StripClasses(i, current, preview int, running bool) string {
	c := "frame"
	if i == current {
		c += " frame-current"
	}
	if running && i == preview {
		c += " preview-current"
	}
	return c
}
