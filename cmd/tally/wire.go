//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/tally-go/connectors/tallyhttp"
	"github.com/weegigs/tally-go/support"
	"github.com/weegigs/tally-go/tally"
)

func initializeApplication(ctx context.Context, cfg support.Config) (*Application, func(), error) {
	panic(wire.Build(
		support.Set,
		tally.Set,
		tallyhttp.Set,
		NewApplication,
	))
}
