package mapping

// MapViewModels applies mapper to every entity.
func MapViewModels[T, V any](entities []T, mapper func(T) V) []V {
	out := make([]V, 0, len(entities))
	for _, e := range entities {
		out = append(out, mapper(e))
	}
	return out
}
