package cache

import "context"

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything; every Get is a miss.
func NewNoopCache() RedisCache {
	return noopCache{}
}

func (noopCache) Save(context.Context, string, any, int) error {
	return nil
}

func (noopCache) Get(context.Context, string, any) error {
	return Nil
}

func (noopCache) Delete(context.Context, string) error {
	return nil
}

func (noopCache) Clear(context.Context, string) error {
	return nil
}
