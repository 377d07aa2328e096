package services

import (
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/voucher_engine/internal/core/ports/services"
	"github.com/SscSPs/voucher_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// A nil locker falls back to an in-process lock.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, locker portssvc.Locker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Periods = NewPeriodGateService(repos.FiscalRepo)
	container.Numbers = NewSequenceService(repos.VoucherRepo)
	container.Voucher = NewVoucherService(
		repos,
		container.Periods,
		container.Numbers,
		WithLocker(locker),
		WithLockTTL(cfg.NumberLockTTL),
	)
	container.Import = NewImportService(container.Voucher, repos.FiscalRepo)

	return container
}
