package onemark

// extractOptions holds configuration for section extraction.
type extractOptions struct {
	// Naming
	sectionName string // overrides the name recovered from the file

	// Processing options
	parallel bool       // reconstruct pages concurrently
	altText  Recognizer // fills empty image alt text, nil disables
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		sectionName: "",
		parallel:    false,
		altText:     nil,
	}
}

// clone creates a copy of extractOptions.
func (o extractOptions) clone() extractOptions {
	return extractOptions{
		sectionName: o.sectionName,
		parallel:    o.parallel,
		altText:     o.altText,
	}
}
