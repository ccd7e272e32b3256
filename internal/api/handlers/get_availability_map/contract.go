package get_availability_map

import (
	"context"

	buildAvailabilityMap "github.com/m04kA/SMC-RestaurantService/internal/usecase/build_availability_map"
)

type BuildAvailabilityMapUseCase interface {
	Execute(ctx context.Context, req *buildAvailabilityMap.Request) (*buildAvailabilityMap.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
