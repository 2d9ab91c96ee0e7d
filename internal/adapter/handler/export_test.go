package handler

// Classify exposes the error mapping to the external test package.
func Classify(err error) (int, string) {
	status, resp := classify(err)
	return status, resp.Code
}
