package handlers

import "strconv"

// atoiParam parses a required integer query param.
func atoiParam(s string) (int, error) {
	return strconv.Atoi(s)
}
