package command

import (
	"fmt"
	"strconv"
	"strings"

	"yamdb/cmd/cli/command/client"
	"yamdb/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var titleCmd = &cobra.Command{
	Use:   "title",
	Short: "Title commands",
	Long:  `Browse titles by category, genre, name or year; admins can also create and delete them.`,
}

var listTitlesCmd = &cobra.Command{
	Use:   "list",
	Short: "List titles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter client.TitleFilter
		filter.Category, _ = cmd.Flags().GetString("category")
		filter.Genre, _ = cmd.Flags().GetString("genre")
		filter.Name, _ = cmd.Flags().GetString("name")
		filter.Year, _ = cmd.Flags().GetInt("year")
		filter.Page, _ = cmd.Flags().GetInt("page")

		page, err := GetClient().ListTitles(cmd.Context(), filter)
		if err != nil {
			return fmt.Errorf("failed to list titles: %w", err)
		}

		if len(page.Data) == 0 {
			fmt.Println("No titles found.")
			return nil
		}

		fmt.Printf("Page %d of %d (%d titles):\n\n", page.Page, page.TotalPages, page.Total)
		for _, t := range page.Data {
			printTitleSummary(t)
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

var getTitleCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid title ID: %w", err)
		}

		title, err := GetClient().GetTitle(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get title: %w", err)
		}

		printTitleSummary(*title)
		if title.Description != nil {
			fmt.Printf("Description: %s\n", *title.Description)
		}
		return nil
	},
}

var createTitleCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a title (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		year, _ := cmd.Flags().GetInt("year")
		genres, _ := cmd.Flags().GetStringSlice("genre")
		category, _ := cmd.Flags().GetString("category")
		description, _ := cmd.Flags().GetString("description")

		req := &dto.CreateTitleRequest{
			Name:  name,
			Year:  &year,
			Genre: genres,
		}
		if category != "" {
			req.Category = &category
		}
		if description != "" {
			req.Description = &description
		}

		title, err := httpClient.CreateTitle(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create title: %w", err)
		}

		color.Green("✓ Title created")
		printTitleSummary(*title)
		return nil
	},
}

var deleteTitleCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a title with its reviews and comments (admin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid title ID: %w", err)
		}
		httpClient, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		if err := httpClient.DeleteTitle(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete title: %w", err)
		}
		color.Green("✓ Title %d deleted", id)
		return nil
	},
}

func printTitleSummary(t dto.TitleResponse) {
	fmt.Printf("ID: %d\n", t.ID)
	fmt.Printf("Name: %s (%d)\n", t.Name, t.Year)
	if t.Rating != nil {
		fmt.Printf("Rating: %.2f/10\n", *t.Rating)
	} else {
		fmt.Println("Rating: no reviews yet")
	}
	if t.Category != nil {
		fmt.Printf("Category: %s\n", t.Category.Name)
	}
	if len(t.Genre) > 0 {
		names := make([]string, 0, len(t.Genre))
		for _, g := range t.Genre {
			names = append(names, g.Name)
		}
		fmt.Printf("Genres: %s\n", strings.Join(names, ", "))
	}
}

func init() {
	titleCmd.AddCommand(listTitlesCmd)
	titleCmd.AddCommand(getTitleCmd)
	titleCmd.AddCommand(createTitleCmd)
	titleCmd.AddCommand(deleteTitleCmd)

	listTitlesCmd.Flags().String("category", "", "Category slug")
	listTitlesCmd.Flags().String("genre", "", "Genre slug")
	listTitlesCmd.Flags().String("name", "", "Name substring")
	listTitlesCmd.Flags().Int("year", 0, "Release year")
	listTitlesCmd.Flags().Int("page", 1, "Page number")

	createTitleCmd.Flags().String("name", "", "Title name")
	createTitleCmd.Flags().Int("year", 0, "Release year")
	createTitleCmd.Flags().StringSlice("genre", nil, "Genre slugs (repeat or comma separate)")
	createTitleCmd.Flags().String("category", "", "Category slug")
	createTitleCmd.Flags().String("description", "", "Description")
	_ = createTitleCmd.MarkFlagRequired("name")
	_ = createTitleCmd.MarkFlagRequired("year")
	_ = createTitleCmd.MarkFlagRequired("genre")
}
