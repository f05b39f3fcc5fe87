package main

import (
	"errors"
	"strings"
	"time"

	"sigma_app/internal/cafeteria"
	"sigma_app/internal/devserver"
	"sigma_app/internal/ui"
	"sigma_app/platform/apperr"

	"github.com/spf13/cobra"
)

var (
	faqCategory string
	menuDate    string
	menuCafe    string
	menuLimit   int
	devAddr     string

	upsertCafe  string
	upsertDate  string
	upsertMeal  string
	upsertItem  string
	upsertPrice int
)

var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Open the interactive screens",
	Long: `Open the interactive screens, starting at the login screen.

A successful login replaces the login screen with the home screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.run(cmd.Context())
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with a student id and password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		out, err := a.loginScreen(cmd.Context())
		if err != nil {
			return err
		}
		if !out.OK() {
			return errReported
		}
		return nil
	},
}

var signUpCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		out, err := a.signUpScreen(cmd.Context())
		if err != nil {
			return err
		}
		if !out.OK() {
			return errReported
		}
		return nil
	},
}

var coursesCmd = &cobra.Command{
	Use:   "courses [query]",
	Short: "Search courses by title, professor or code",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printCourses(strings.Join(args, " "))
	},
}

var faqCmd = &cobra.Command{
	Use:   "faq [query]",
	Short: "Search frequently asked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printFAQ(strings.Join(args, " "), faqCategory)
	},
}

var facilitiesCmd = &cobra.Command{
	Use:   "facilities",
	Short: "Show how crowded campus facilities are",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printFacilities()
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the academic schedule",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printSchedule()
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the student profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printProfile()
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant",
	Long: `Talk to the assistant. Replies need GEMINI_API_KEY; without it the
transcript only records your messages.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return ignoreAbort(a.chatScreen(cmd.Context()))
	},
}

var cafeteriasCmd = &cobra.Command{
	Use:   "cafeterias [query]",
	Short: "List cafeterias",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printCafeterias(cmd.Context(), strings.Join(args, " "))
	},
}

var menusCmd = &cobra.Command{
	Use:   "menus",
	Short: "List cafeteria menus, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := menuFilter(menuDate, menuCafe, menuLimit)
		if err != nil {
			return err
		}
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.printMenus(cmd.Context(), filter)
	},
}

var menuUpsertCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or update one menu item",
	Long: `Create or update one menu item. A row is identified by cafeteria,
date, meal type and item name; sending the same row again updates its price.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := menuInput(upsertCafe, upsertDate, upsertMeal, upsertItem, upsertPrice)
		if err != nil {
			return err
		}
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		return a.upsertMenu(cmd.Context(), in)
	},
}

var devServerCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run an in-memory backend for local development",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		if devAddr != "" {
			a.cfg.DevAddr = devAddr
		}
		return devserver.New(a.cfg, a.catalog, a.log).Run(cmd.Context())
	},
}

func menuFilter(date, cafe string, limit int) (cafeteria.MenuFilter, error) {
	filter := cafeteria.MenuFilter{Cafe: cafe, Limit: limit}
	if date != "" {
		d, err := time.Parse(cafeteria.DateLayout, date)
		if err != nil {
			return filter, apperr.Validation("--date must be YYYY-MM-DD")
		}
		filter.Date = d
	}
	if limit < 0 {
		return filter, apperr.Validation("--limit must not be negative")
	}
	return filter, nil
}

// menuInput builds the upsert body from flags. A negative price means none.
func menuInput(cafe, date, meal, item string, price int) (cafeteria.MenuInput, error) {
	in := cafeteria.MenuInput{
		CafeName: strings.TrimSpace(cafe),
		Date:     date,
		MealType: strings.TrimSpace(meal),
		ItemName: strings.TrimSpace(item),
	}
	if in.CafeName == "" || in.MealType == "" || in.ItemName == "" {
		return in, apperr.Validation("--cafe, --meal and --item are required")
	}
	if _, err := time.Parse(cafeteria.DateLayout, date); err != nil {
		return in, apperr.Validation("--date must be YYYY-MM-DD")
	}
	if price >= 0 {
		in.Price = &price
	}
	return in, nil
}

func ignoreAbort(err error) error {
	if errors.Is(err, ui.ErrAborted) {
		return nil
	}
	return err
}
