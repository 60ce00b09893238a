package cmd

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/core/domain/model/worker"

	"github.com/shopspring/decimal"
)

const demoShift = 8 * time.Hour

// SeedDemo registers a small network: two suppliers, three items, two
// stores with empty shelves, one assembler working both stores and a
// courier per store.
func (c *CompositionRoot) SeedDemo(ctx context.Context) error {
	items := make(map[string]item.Item, 3)
	for name, price := range map[string]int64{"pen": 12, "pencil": 10, "rubber": 7} {
		it, err := item.NewItem(kernel.NewUUID(), name, decimal.NewFromInt(price), kernel.NewUUID(), kernel.NewUUID())
		if err != nil {
			return err
		}
		items[name] = it
	}

	var suppliers []*supplier.Supplier
	for _, p := range []struct {
		name   string
		amount int
	}{
		{"provider1", 7},
		{"provider2", 12},
	} {
		id := kernel.NewUUID()
		sup, err := supplier.NewSupplier(id, p.name, c.NewLedger("supplier:"+id.String()))
		if err != nil {
			return err
		}
		for _, name := range []string{"pen", "pencil", "rubber"} {
			if err := sup.AddItem(ctx, items[name], p.amount); err != nil {
				return err
			}
		}
		suppliers = append(suppliers, sup)
	}

	createWorker := c.CreateCreateWorkerCommandHandler()
	startShift := c.CreateStartShiftCommandHandler()

	assemblerID := kernel.NewUUID()
	if err := c.createDemoWorker(ctx, createWorker, assemblerID, "assembler", worker.Assembler); err != nil {
		return err
	}

	for _, s := range []struct {
		name     string
		location kernel.Location
		items    []string
		courier  string
	}{
		{"store1", kernel.NewLocation(-10, -10), []string{"pen", "pencil", "rubber"}, "courier1"},
		{"store2", kernel.NewLocation(10, 10), []string{"pen", "pencil"}, "courier2"},
	} {
		st, err := c.NewStore(kernel.NewUUID(), s.name, s.location)
		if err != nil {
			return err
		}
		for _, name := range s.items {
			if err := st.RegisterItem(items[name]); err != nil {
				return err
			}
		}
		for _, sup := range suppliers {
			if err := st.RegisterSupplier(sup); err != nil {
				return err
			}
		}
		if err := c.stores.Add(ctx, st); err != nil {
			return err
		}

		courierID := kernel.NewUUID()
		if err := c.createDemoWorker(ctx, createWorker, courierID, s.courier, worker.Courier); err != nil {
			return err
		}
		for _, id := range []kernel.UUID{assemblerID, courierID} {
			cmd, err := commands.NewStartShiftCommand(st.ID(), id, demoShift)
			if err != nil {
				return err
			}
			if err := startShift.Handle(ctx, cmd); err != nil {
				return fmt.Errorf("start shift at %s: %w", s.name, err)
			}
		}

		c.logger.InfoContext(ctx, "Demo store seeded", "store_id", st.ID().String(), "name", s.name)
	}
	return nil
}

func (c *CompositionRoot) createDemoWorker(
	ctx context.Context,
	handler commands.CreateWorkerCommandHandler,
	id kernel.UUID,
	name string,
	role worker.Role,
) error {
	cmd, err := commands.NewCreateWorkerCommand(id, name, role)
	if err != nil {
		return err
	}
	if err := handler.Handle(ctx, cmd); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	return nil
}
