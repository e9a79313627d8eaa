package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var genreCmd = &cobra.Command{
	Use:   "genre",
	Short: "List genres",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		pageNum, _ := cmd.Flags().GetInt("page")

		page, err := GetClient().ListGenres(cmd.Context(), search, pageNum)
		if err != nil {
			return fmt.Errorf("failed to get genres: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No genres found.")
			return nil
		}

		fmt.Printf("Genres (%d total):\n\n", page.Total)
		for _, g := range page.Data {
			fmt.Printf("%-20s %s\n", g.Slug, g.Name)
		}
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")
		pageNum, _ := cmd.Flags().GetInt("page")

		page, err := GetClient().ListCategories(cmd.Context(), search, pageNum)
		if err != nil {
			return fmt.Errorf("failed to get categories: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No categories found.")
			return nil
		}

		fmt.Printf("Categories (%d total):\n\n", page.Total)
		for _, c := range page.Data {
			fmt.Printf("%-20s %s\n", c.Slug, c.Name)
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{genreCmd, categoryCmd} {
		cmd.Flags().String("search", "", "Name substring")
		cmd.Flags().Int("page", 1, "Page number")
	}
}
