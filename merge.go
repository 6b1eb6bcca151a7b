package tether

// Merge fans several sources into one. Attaching the merged source attaches
// to every underlying source with the same guarded emitter; detaching
// detaches every one. Values from all sources share one relay, so the
// consumer observes them interleaved in arrival order.
//
// The merged source is never Stateful or Distinctable: there is no single
// current value across widgets, and deduplication across unrelated widgets
// is rarely what a caller wants. Apply Distinct per binding if needed.
func Merge[T any](sources ...Source[T]) Source[T] {
	return &merged[T]{sources: sources}
}

type merged[T any] struct {
	sources []Source[T]
}

type mergedHandle []Handle

// Attach attaches to every underlying source. If any attach fails, the ones
// already attached are detached before the error is returned, so a failed
// merge leaves no listener behind.
func (m *merged[T]) Attach(emit func(T) bool) (Handle, error) {
	handles := make(mergedHandle, 0, len(m.sources))
	for _, src := range m.sources {
		h, err := src.Attach(emit)
		if err != nil {
			for i := range handles {
				m.sources[i].Detach(handles[i])
			}
			return nil, err
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// Detach detaches every underlying source.
func (m *merged[T]) Detach(h Handle) {
	handles, ok := h.(mergedHandle)
	if !ok {
		return
	}
	for i, src := range m.sources {
		if i < len(handles) {
			src.Detach(handles[i])
		}
	}
}
