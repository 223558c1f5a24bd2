package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	composetui "github.com/dibella/orderdesk/internal/adapters/inbound/tui"
	"github.com/dibella/orderdesk/internal/adapters/outbound/tui"
	"github.com/dibella/orderdesk/internal/application"
	"github.com/dibella/orderdesk/internal/domain"
)

// savedOrder is the --json result of create and edit.
type savedOrder struct {
	ID      domain.OrderID `json:"id"`
	Created bool           `json:"created"`
	Total   string         `json:"total_value"`
}

func newOrdersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"order"},
		Short:   "List, show, create and edit orders",
	}
	cmd.AddCommand(newOrdersListCmd(opts))
	cmd.AddCommand(newOrdersShowCmd(opts))
	cmd.AddCommand(newOrdersCreateCmd(opts))
	cmd.AddCommand(newOrdersEditCmd(opts))
	cmd.AddCommand(newOrdersComposeCmd(opts))
	return cmd
}

func newOrdersListCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			orders, err := a.svc.ListOrders(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, orders)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrders(orders))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output orders as JSON")
	return cmd
}

func newOrdersShowCmd(opts *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order with its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}
			order, err := a.svc.GetOrder(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, order)
			}
			// Names are a nicety; the order is still shown without them.
			products, _ := a.svc.ListProducts(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderOrder(order, products))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output order as JSON")
	return cmd
}

func newOrdersCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		items      []string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an order from --item PRODUCT:QUANTITY pairs",
		Example: `  orderdesk orders create --item 5:2 --item 3:1
  orderdesk orders create --item 5:2 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lineItems, err := domain.ParseLineItems(items)
			if err != nil {
				return err
			}
			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}

			c := a.svc.NewComposer(0)
			defer c.Close()
			if err := c.Mount(cmd.Context()); err != nil {
				return err
			}
			for _, item := range lineItems {
				if err := application.AddItem(c, item); err != nil {
					return err
				}
			}
			return finishComposition(cmd, c, dryRun, jsonOutput)
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "Line item as PRODUCT:QUANTITY (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Price and validate without saving")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	return cmd
}

func newOrdersEditCmd(opts *rootOptions) *cobra.Command {
	var (
		removes    []int
		sets       []string
		adds       []string
		dryRun     bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit the line items of a saved order",
		Long: `Load an order, apply the requested edits and save it.

Edits are applied in a fixed order: removals (highest position first), then
field changes, then new line items. Positions are 1-based as shown by
"orderdesk orders show".`,
		Example: `  orderdesk orders edit 7 --set 1:quantity=3
  orderdesk orders edit 7 --remove 2 --add 8:12`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseOrderID(args[0])
			if err != nil {
				return err
			}
			changes := make([]fieldChange, 0, len(sets))
			for _, s := range sets {
				fc, err := parseFieldChange(s)
				if err != nil {
					return err
				}
				changes = append(changes, fc)
			}
			additions, err := domain.ParseLineItems(adds)
			if err != nil {
				return err
			}
			if len(removes)+len(changes)+len(additions) == 0 && !dryRun {
				return fmt.Errorf("nothing to change (use --remove, --set or --add)")
			}

			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}

			c := a.svc.NewComposer(id)
			defer c.Close()
			if err := c.Mount(cmd.Context()); err != nil {
				return err
			}
			if err := applyEdits(c, removes, changes, additions); err != nil {
				return err
			}
			return finishComposition(cmd, c, dryRun, jsonOutput)
		},
	}

	cmd.Flags().IntSliceVar(&removes, "remove", nil, "Remove the line item at POSITION (repeatable)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Change a field as POSITION:FIELD=VALUE, e.g. 1:quantity=3 (repeatable)")
	cmd.Flags().StringArrayVar(&adds, "add", nil, "Append a line item as PRODUCT:QUANTITY (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Price and validate without saving")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output result as JSON")
	return cmd
}

func newOrdersComposeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compose [id]",
		Short: "Compose an order interactively",
		Long:  "Open an interactive session for a new order, or for the saved order with the given id.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id domain.OrderID
			if len(args) == 1 {
				parsed, err := parseOrderID(args[0])
				if err != nil {
					return err
				}
				id = parsed
			}
			a, err := opts.bootstrap(cmd)
			if err != nil {
				return err
			}

			saved, err := composetui.Run(cmd.Context(), a.svc, id, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if saved != nil {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderSaved(*saved, id == 0))
			}
			return nil
		},
	}
}

type fieldChange struct {
	position int
	field    domain.Field
	value    string
}

// applyEdits runs removals highest position first so earlier positions stay
// valid, then field changes, then additions.
func applyEdits(c *application.Composer, removes []int, changes []fieldChange, additions []domain.LineItem) error {
	count := len(c.Snapshot().Order.LineItems)
	checkPosition := func(p int) error {
		if p < 1 || p > count {
			return fmt.Errorf("no line item at position %d (order has %d)", p, count)
		}
		return nil
	}

	positions := slices.Clone(removes)
	slices.Sort(positions)
	positions = slices.Compact(positions)
	for _, p := range positions {
		if err := checkPosition(p); err != nil {
			return err
		}
	}
	for _, fc := range changes {
		if err := checkPosition(fc.position); err != nil {
			return err
		}
		if slices.Contains(positions, fc.position) {
			return fmt.Errorf("position %d is both removed and changed", fc.position)
		}
	}

	for i := len(positions) - 1; i >= 0; i-- {
		if err := c.RemoveLineItem(positions[i] - 1); err != nil {
			return err
		}
	}
	for _, fc := range changes {
		// Positions refer to the order as loaded; account for removals before it.
		shift := 0
		for _, p := range positions {
			if p < fc.position {
				shift++
			}
		}
		if err := c.UpdateLineItem(fc.position-1-shift, fc.field, fc.value); err != nil {
			return err
		}
	}
	for _, item := range additions {
		if err := application.AddItem(c, item); err != nil {
			return err
		}
	}
	return nil
}

// finishComposition previews or submits the composed order and reports the
// outcome.
func finishComposition(cmd *cobra.Command, c *application.Composer, dryRun, jsonOutput bool) error {
	preview := c.Preview()
	snap := c.Snapshot()

	if dryRun {
		if jsonOutput {
			return renderJSON(cmd, preview)
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderPreview(preview.Order, preview.Progress, preview.Problem, preview.Unknown, snap.Products))
		return nil
	}

	id, err := c.Submit(cmd.Context())
	if err != nil {
		return err
	}
	created := snap.Mode == application.ModeCreate
	if jsonOutput {
		return renderJSON(cmd, savedOrder{ID: id, Created: created, Total: preview.Order.TotalValue.StringFixed(2)})
	}
	fmt.Fprint(cmd.OutOrStdout(), tui.RenderSaved(id, created))
	return nil
}

func parseOrderID(s string) (domain.OrderID, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid order id %q", s)
	}
	return domain.OrderID(n), nil
}

// parseFieldChange reads POSITION:FIELD=VALUE.
func parseFieldChange(s string) (fieldChange, error) {
	position, rest, ok := strings.Cut(s, ":")
	if !ok {
		return fieldChange{}, fmt.Errorf("invalid change %q (want POSITION:FIELD=VALUE)", s)
	}
	name, value, ok := strings.Cut(rest, "=")
	if !ok {
		return fieldChange{}, fmt.Errorf("invalid change %q (want POSITION:FIELD=VALUE)", s)
	}
	p, err := strconv.Atoi(strings.TrimSpace(position))
	if err != nil {
		return fieldChange{}, fmt.Errorf("invalid position in change %q", s)
	}
	field, err := domain.ParseField(name)
	if err != nil {
		return fieldChange{}, err
	}
	return fieldChange{position: p, field: field, value: strings.TrimSpace(value)}, nil
}
