package payment

import "time"

type OptionsCache interface {
	Get() (*EntryOptions, bool)
	Set(options *EntryOptions, ttl time.Duration)
	Invalidate()
}

type noopOptionsCache struct{}

func (noopOptionsCache) Get() (*EntryOptions, bool) {
	return nil, false
}

func (noopOptionsCache) Set(*EntryOptions, time.Duration) {}

func (noopOptionsCache) Invalidate() {}

func NewNoopOptionsCache() OptionsCache {
	return noopOptionsCache{}
}
