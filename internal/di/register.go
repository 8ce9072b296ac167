package di

import "github.com/samber/do/v2"

// RegisterSingletons registers all service providers as singletons, in
// dependency order:
// 1. Config (no dependencies)
// 2. Logger (depends on Config)
// 3. Cache (depends on Config, Logger)
// 4. Resolver (depends on Config, Logger, Cache)
// 5. Descriptor (depends on Logger).
func RegisterSingletons(i do.Injector) {
	do.Provide(i, NewConfig)
	do.Provide(i, NewLogger)
	do.Provide(i, NewCache)
	do.Provide(i, NewResolver)
	do.Provide(i, NewDescriptor)
}
