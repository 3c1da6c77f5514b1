package commands

import (
	"fmt"
	"strconv"

	"seektam-backend/internal/catalog"
	"seektam-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var (
	foodsCategory    *string
	foodsSubcategory *string
	foodsLimit       *int
)

func init() {
	foodsCategory = foodsCmd.Flags().String("category", "", "Only list foods of this big category.")
	foodsSubcategory = foodsCmd.Flags().String("subcategory", "", "Only list foods of this small category.")
	foodsLimit = foodsCmd.Flags().Int("limit", 0, "The maximum amount of foods to list, 0 lists all of them.")
	rootCmd.AddCommand(foodsCmd)
	rootCmd.AddCommand(foodCmd)
}

var foodsCmd = &cobra.Command{
	Use:   "foods <database-url> [--category <big>] [--subcategory <small>]",
	Short: "Lists the foods in the database.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store := openStore(ctx, args[0], catalog.PolicyReuse)

		foods, err := store.Foods(ctx, catalog.ListFoodsParams{
			CategoryBig:   *foodsCategory,
			CategorySmall: *foodsSubcategory,
			Limit:         *foodsLimit,
		})
		if err != nil {
			serviceutil.Fatal("list foods", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"ID", "Name", "Category", "Subcategory"})
		for _, food := range foods {
			t.AppendRow(table.Row{food.ID, food.Name, food.CategoryBig, food.CategorySmall})
		}
		t.AppendFooter(table.Row{"", "Total", len(foods)})
		t.Render()
	},
}

var foodCmd = &cobra.Command{
	Use:   "food <database-url> <name>",
	Short: "Shows the aliments of a food and their nutrients per gram.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		store := openStore(ctx, args[0], catalog.PolicyReuse)

		food, err := store.Food(ctx, args[1])
		if err != nil {
			serviceutil.Fatal("get food", err)
		}

		fmt.Printf("%s (%s / %s)\n", food.Name, food.CategoryBig, food.CategorySmall)

		t := newTable()
		header := table.Row{"Nutrient"}
		for _, aliment := range food.Aliments {
			header = append(header, aliment.Name)
		}
		t.AppendHeader(header)

		configs := []table.ColumnConfig{}
		for i := range food.Aliments {
			configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
		}
		t.SetColumnConfigs(configs)

		for _, column := range catalog.NutrientColumns {
			row := table.Row{column.Name}
			for _, aliment := range food.Aliments {
				row = append(row, strconv.FormatFloat(*column.Field(&aliment.Nutrients), 'g', 6, 64))
			}
			t.AppendRow(row)
		}
		t.Render()
	},
}
