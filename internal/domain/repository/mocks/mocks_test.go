package mocks

import "github.com/rutea-api/internal/domain/repository"

var (
	_ repository.UserRepository     = (*UserRepository)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.PointRepository    = (*PointRepository)(nil)
	_ repository.ReviewRepository   = (*ReviewRepository)(nil)
	_ repository.RouteRepository    = (*RouteRepository)(nil)
	_ repository.ActivityRepository = (*ActivityRepository)(nil)
	_ repository.StreamRepository   = (*StreamRepository)(nil)
)
