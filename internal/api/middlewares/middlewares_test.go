package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func Test_RecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(logan.New())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	res, err := interceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})
	require.Nil(t, res)
	require.Equal(t, codes.Internal, status.Code(err))

	res, err = interceptor(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", res)
}

func Test_HijackedConnectionCloser(t *testing.T) {
	serverCtx, shutdown := context.WithCancel(context.Background())
	finished := make(chan struct{})

	handler := HijackedConnectionCloser(serverCtx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer close(finished)
		<-r.Context().Done()
	}))

	go handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws/events", nil))

	shutdown()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("handler was not released on server shutdown")
	}
}
