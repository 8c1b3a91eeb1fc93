package value

// loadURLFunctions registers the url builtins. Image probing helpers from
// the reference implementation need file access and stay external; data-uri
// keeps its documented fallback of emitting a plain url().
func loadURLFunctions(l *Library) {
	dataURI := func(args []Value) (Value, error) {
		path := args[len(args)-1].(*String)
		return &URL{Raw: "url(" + path.String() + ")", Inner: path.Text}, nil
	}
	l.Register("data-uri", "S", dataURI)
	l.Register("data-uri", "SS", dataURI)
}
