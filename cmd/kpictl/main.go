package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/kpi"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/report"
	"neemba.com/sepkpi/sheets"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/utils"
)

func main() {
	if err := setupCommands().Execute(); err != nil {
		os.Exit(1)
	}
}

func nowDate() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func connect() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := config.ConnectDatabase()
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

func setupCommands() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kpictl",
		Short:         "Workshop KPI maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// command for loading a spreadsheet from disk without going through HTTP
	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a timesheet, inspection or invoicing spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, cfg, err := connect()
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(
				&models.Pointage{},
				&models.InspectionRecord{},
				&models.LLTIRecord{},
			); err != nil {
				return err
			}
			return runImport(db, cfg, args[0])
		},
	}

	// command for printing the meeting markdown without persisting anything
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the meeting summary markdown from current data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := connect()
			if err != nil {
				return err
			}
			return runSummary(db)
		},
	}

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(summaryCmd)
	return rootCmd
}

func runImport(db *gorm.DB, cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	tables, err := sheets.ReadTabular(f, path)
	if err != nil {
		return err
	}

	day := nowDate()
	for _, table := range tables {
		switch table.Kind {
		case sheets.KindTimesheet:
			entries, err := kpi.LoadTimesheet(table.Header, table.Rows)
			if err != nil {
				return err
			}
			rows := store.BuildPointages(entries)
			if err := store.UpsertPointages(db, rows); err != nil {
				return err
			}
			fmt.Printf("%s: %d timesheet rows imported\n", table.Name, len(rows))

		case sheets.KindInspection:
			parsed, err := sheets.ParseInspection(table.Header, table.Rows)
			if err != nil {
				return err
			}
			if err := store.UpsertInspections(db, parsed); err != nil {
				return err
			}
			fmt.Printf("%s: %d inspection rows imported\n", table.Name, len(parsed))

		case sheets.KindLLTI:
			raw, err := sheets.ParseLLTI(table.Header, table.Rows)
			if err != nil {
				return err
			}
			invoices := kpi.PrepareInvoices(raw, cfg.Manufacturer, day)
			if err := store.UpsertInvoices(db, invoices); err != nil {
				return err
			}
			fmt.Printf("%s: %d invoices imported\n", table.Name, len(invoices))

		default:
			fmt.Printf("%s: unrecognized sheet, skipped\n", table.Name)
		}
	}
	return nil
}

func runSummary(db *gorm.DB) error {
	entries, err := store.LoadPointages(db)
	if err != nil {
		return err
	}
	invoices, err := store.LoadInvoices(db)
	if err != nil {
		return err
	}
	inspections, err := store.LoadInspections(db)
	if err != nil {
		return err
	}
	open, err := store.ListLeanActions(db, models.LeanActionOpen)
	if err != nil {
		return err
	}

	day := nowDate()
	overdue := utils.Filter(open, func(a models.LeanAction) bool {
		return a.IsOverdue(day)
	})

	days := kpi.AggregateDays(entries)
	md := report.Render(report.Data{
		MeetingDate:    day,
		Productivity:   kpi.Summarize(days),
		Exhaustivity:   kpi.GlobalRate(kpi.CheckDaily(days)),
		Inspection:     kpi.RateByOrder(inspections),
		Leads:          kpi.SummarizeLeads(invoices),
		Quarter:        kpi.CurrentQuarter(day),
		OpenActions:    open,
		OverdueActions: overdue,
	})
	fmt.Println(md)
	return nil
}
