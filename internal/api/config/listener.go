package config

import (
	"net"

	"github.com/pkg/errors"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
)

const listenerConfigKey = "listener"

type Listenerer interface {
	ApiHttpListener() net.Listener
	ApiGrpcListener() net.Listener
}

type listenerer struct {
	getter   kv.Getter
	cfgOnce  comfig.Once
	httpOnce comfig.Once
	grpcOnce comfig.Once
}

type listenerConfig struct {
	Http string `fig:"http,required"`
	Grpc string `fig:"grpc,required"`
}

func NewListenerer(getter kv.Getter) Listenerer {
	return &listenerer{getter: getter}
}

func (l *listenerer) ApiHttpListener() net.Listener {
	return l.httpOnce.Do(func() interface{} {
		return listen(l.config().Http)
	}).(net.Listener)
}

func (l *listenerer) ApiGrpcListener() net.Listener {
	return l.grpcOnce.Do(func() interface{} {
		return listen(l.config().Grpc)
	}).(net.Listener)
}

func (l *listenerer) config() listenerConfig {
	return l.cfgOnce.Do(func() interface{} {
		var cfg listenerConfig

		err := figure.
			Out(&cfg).
			With(figure.BaseHooks).
			From(kv.MustGetStringMap(l.getter, listenerConfigKey)).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out listener config"))
		}

		return cfg
	}).(listenerConfig)
}

func listen(addr string) net.Listener {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		panic(errors.Wrapf(err, "failed to listen on %s", addr))
	}

	return listener
}
