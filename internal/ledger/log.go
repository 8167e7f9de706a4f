package ledger

import (
	"github.com/Bridgeless-Project/treasury-svc/internal/types"
	"gitlab.com/distributed_lab/logan/v3"
)

func logResult(logger *logan.Entry, operation string, err error) {
	switch {
	case err == nil:
		logger.Info(operation + " executed")
	case types.IsRejection(err):
		logger.WithError(err).Debug(operation + " rejected")
	default:
		logger.WithError(err).Error(operation + " failed")
	}
}
