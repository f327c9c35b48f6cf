package androidfw

// Fuzz exercises ParseConfiguration against go-fuzz corpora, following the
// convention go-fuzz expects: return 1 to mark the input interesting for
// the corpus, 0 otherwise.
func Fuzz(data []byte) int {
	c, err := ParseConfiguration(string(data))
	if err != nil {
		return 0
	}
	if c.String() == "" && string(data) != "" {
		return 0
	}
	return 1
}
