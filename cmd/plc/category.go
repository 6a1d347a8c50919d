package main

import (
	"fmt"

	"github.com/franz/playlist-curator/internal/menu"
	"github.com/franz/playlist-curator/internal/util"
	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage playlist categories",
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryCreate,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a category, unassigning its folders",
	Long: `Delete a category. Folders assigned to it keep their database rows but
lose the assignment; they show up again on the next assign run. Without
a name argument the category is picked interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCategoryDelete,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with folder counts",
	RunE:  runCategoryList,
}

func init() {
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categoryListCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryCreate(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cat, err := db.CreateCategory(args[0])
	if err != nil {
		return err
	}

	util.SuccessLog("Created category ID%d %s", cat.ID, cat.Name)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var id int64
	var name string

	if len(args) == 1 {
		cat, err := db.GetCategoryByName(args[0])
		if err != nil {
			return err
		}
		if cat == nil {
			return fmt.Errorf("category %s: %w", args[0], util.ErrNotFound)
		}
		id, name = cat.ID, cat.Name
	} else {
		categories, err := db.ListCategories()
		if err != nil {
			return err
		}
		if len(categories) == 0 {
			return fmt.Errorf("no categories exist: %w", util.ErrNotFound)
		}

		options := make([]string, len(categories))
		for i, cat := range categories {
			options[i] = fmt.Sprintf("ID%d %s", cat.ID, cat.Name)
		}

		choice, ok := menu.New().Choose("Select category to delete", options, -1)
		if !ok {
			util.InfoLog("Delete cancelled")
			return nil
		}
		id, name = categories[choice].ID, categories[choice].Name
	}

	// Warn before orphaning assigned folders
	count, err := db.CountFoldersInCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		prompt := fmt.Sprintf("Category %s has %d assigned folders. Delete anyway?", name, count)
		if !menu.New().Confirm(prompt) {
			util.InfoLog("Delete cancelled")
			return nil
		}
	}

	if err := db.DeleteCategory(id); err != nil {
		return err
	}

	util.SuccessLog("Deleted category %s (%d folders unassigned)", name, count)
	return nil
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	setupLogging()

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	categories, err := db.ListCategories()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		util.InfoLog("No categories defined. Create one with: plc category create <name>")
		return nil
	}

	for _, cat := range categories {
		count, err := db.CountFoldersInCategory(cat.ID)
		if err != nil {
			return err
		}
		fmt.Printf("ID%-4d %-30s %d folders\n", cat.ID, cat.Name, count)
	}

	return nil
}
