package health

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_Checker(t *testing.T) {
	type tc struct {
		components map[string]Checkable
		ok         bool
		failed     []string
	}

	healthy := CheckFunc(func() error { return nil })
	broken := CheckFunc(func() error { return errors.New("connection refused") })

	testCases := map[string]tc{
		"should be healthy without components": {
			components: map[string]Checkable{},
			ok:         true,
		},
		"should be healthy when every component is": {
			components: map[string]Checkable{"database": healthy, "solvency": healthy},
			ok:         true,
		},
		"should report failed component": {
			components: map[string]Checkable{"database": healthy, "solvency": broken},
			failed:     []string{"solvency"},
		},
	}

	for name, tCase := range testCases {
		t.Run(name, func(t *testing.T) {
			response := NewChecker(tCase.components).Check()

			require.Equal(t, tCase.ok, response.Ok)
			require.Len(t, response.Statuses, len(tCase.components))
			for _, failed := range tCase.failed {
				require.False(t, response.Statuses[failed].Ok)
				require.Equal(t, "connection refused", response.Statuses[failed].Error)
			}
		})
	}
}

func Test_Checker_RunsEveryComponent(t *testing.T) {
	var calls atomic.Int32
	counted := CheckFunc(func() error { calls.Add(1); return nil })

	checker := NewChecker(map[string]Checkable{"a": counted, "b": counted, "c": counted})
	require.Equal(t, []string{"a", "b", "c"}, checker.Components())

	checker.Check()
	require.Equal(t, int32(3), calls.Load())
}
