package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/league --output domain/league --outpkg leaguemock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/team --output domain/team --outpkg teammock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/sport --output domain/sport --outpkg sportmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/season --output domain/season --outpkg seasonmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/standing --output domain/standing --outpkg standingmock --filename source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/highlight --output domain/highlight --outpkg highlightmock --filename source_mock.go
