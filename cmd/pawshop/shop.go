package main

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pawshop/internal/api"
	"pawshop/internal/store"
)

var (
	searchFlag   string
	categoryFlag string
	pageFlag     int
	pageSizeFlag int

	registerName    string
	registerAddress string

	addressFlag string
	yesFlag     bool
)

var loginCmd = &cobra.Command{
	Use:   "login [email] [password]",
	Short: "Sign in and persist the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		user, err := a.shop.Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Signed in as %s (%s)", user.Name, user.Role)))

		// Warm the cart mirror so the next command starts current.
		if err := a.store.cart.Fetch(cmd.Context()); err != nil {
			logger.Warn("initial cart fetch failed")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the persisted session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.shop.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [email] [password] [confirm-password]",
	Short: "Create an account",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		req := api.RegisterRequest{
			Name:     registerName,
			Email:    args[0],
			Password: args[1],
			Address:  registerAddress,
		}
		user, err := a.shop.Register(cmd.Context(), req, args[2])
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Account created for %s", user.Email)))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user := a.store.session.User()
		if user == nil {
			fmt.Println(faintStyle.Render("Not signed in"))
			return nil
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
		return nil
	},
}

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"catalog"},
	Short:   "Browse the catalog",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		q := api.ProductQuery{Page: pageFlag, PageSize: pageSizeFlag, Search: searchFlag}
		if categoryFlag != "" {
			id, err := uuid.Parse(categoryFlag)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", categoryFlag, err)
			}
			q.CategoryID = id
		}

		page, err := a.shop.Browse(cmd.Context(), q)
		if err != nil {
			return err
		}
		fmt.Print(renderProducts(page))
		return nil
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List product categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		categories, err := a.shop.Categories(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(renderCategories(categories))
		return nil
	},
}

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// Refetch first; a failed fetch falls back to the last good mirror.
		if err := a.shop.RefreshCart(cmd.Context()); err != nil {
			fmt.Println(warnStyle.Render("Could not reach the backend, showing last known cart"))
		}
		fmt.Print(renderCart(a.store.cart.Items(), a.store.cart.Total()))
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cartCmd.RunE(cmd, args)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add [product-id] [quantity]",
	Short: "Add a product to the cart",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		productID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q: %w", args[0], err)
		}
		quantity := 1
		if len(args) == 2 {
			quantity, err = strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
		}
		return a.shop.AddToCart(cmd.Context(), productID, quantity)
	},
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update [line-id] [quantity]",
	Short: "Change a cart line's quantity",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		lineID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid line id %q: %w", args[0], err)
		}
		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q: %w", args[1], err)
		}
		return a.shop.ChangeQuantity(cmd.Context(), lineID, quantity)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "rm [line-id]",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		lineID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid line id %q: %w", args[0], err)
		}

		decision := a.shop.ConfirmRemoval()
		if yesFlag {
			a.store.modals.Resolve(true)
		} else {
			a.resolvePrompt()
		}
		outcome, err := decision.Wait(cmd.Context())
		if err != nil {
			return err
		}
		if outcome != store.Confirmed {
			fmt.Println(faintStyle.Render("Kept the item"))
			return nil
		}
		return a.shop.RemoveFromCart(cmd.Context(), lineID)
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		if !yesFlag {
			decision := a.store.modals.Confirm("Remove every item from the cart?", "Clear cart")
			a.resolvePrompt()
			outcome, err := decision.Wait(cmd.Context())
			if err != nil {
				return err
			}
			if outcome != store.Confirmed {
				fmt.Println(faintStyle.Render("Cart kept"))
				return nil
			}
		}
		if err := a.shop.ClearCart(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Cart cleared")
		return nil
	},
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the cart contents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		defer a.flushToasts()

		ctx := cmd.Context()
		if err := a.shop.RefreshCart(ctx); err != nil {
			return err
		}
		order, err := a.shop.Checkout(ctx, addressFlag)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("Order %s placed, total ฿%.2f", order.ID, order.TotalAmount)))
		return nil
	},
}

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your past orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		orders, err := a.shop.OrderHistory(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(renderOrders(orders))
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&registerAddress, "address", "", "Default shipping address")

	productsCmd.Flags().StringVar(&searchFlag, "search", "", "Filter by name")
	productsCmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category id")
	productsCmd.Flags().IntVar(&pageFlag, "page", 0, "Page number")
	productsCmd.Flags().IntVar(&pageSizeFlag, "page-size", 0, "Items per page")

	cartRemoveCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	cartClearCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")

	checkoutCmd.Flags().StringVar(&addressFlag, "address", "", "Shipping address")
	_ = checkoutCmd.MarkFlagRequired("address")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartUpdateCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}
