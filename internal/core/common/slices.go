package common

// FlatMap applies fn to every item and concatenates the results in order.
func FlatMap[S, T any](items []S, fn func(S) []T) []T {
	var out []T
	for _, item := range items {
		out = append(out, fn(item)...)
	}
	return out
}
