package command

import (
	"fmt"
	"strconv"
	"strings"

	"yamdb/internal/microservices/http-api/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review commands",
	Long:  `Read the reviews of a title, post your own (one per title, score 1-10) or delete one.`,
}

var listReviewsCmd = &cobra.Command{
	Use:   "list [title-id]",
	Short: "List the reviews of a title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid title ID: %w", err)
		}
		pageNum, _ := cmd.Flags().GetInt("page")

		page, err := GetClient().ListReviews(cmd.Context(), titleID, pageNum)
		if err != nil {
			return fmt.Errorf("failed to list reviews: %w", err)
		}
		if len(page.Data) == 0 {
			fmt.Println("No reviews yet.")
			return nil
		}

		for _, r := range page.Data {
			fmt.Printf("#%d by %s, %d/10 on %s\n", r.ID, r.Author, r.Score, r.PubDate.Format("2006-01-02 15:04"))
			fmt.Println(r.Text)
			fmt.Println(strings.Repeat("-", 50))
		}
		return nil
	},
}

var addReviewCmd = &cobra.Command{
	Use:   "add [title-id] [score] [text...]",
	Short: "Review a title (score 1-10)",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid title ID: %w", err)
		}
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score: %w", err)
		}
		if score < 1 || score > 10 {
			return fmt.Errorf("score must be between 1 and 10")
		}

		httpClient, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}

		review, err := httpClient.CreateReview(cmd.Context(), titleID, &dto.CreateReviewRequest{
			Text:  strings.Join(args[2:], " "),
			Score: &score,
		})
		if err != nil {
			return fmt.Errorf("failed to post review: %w", err)
		}

		color.Green("✓ Review #%d posted", review.ID)
		return nil
	},
}

var deleteReviewCmd = &cobra.Command{
	Use:   "delete [title-id] [review-id]",
	Short: "Delete a review (author, moderator or admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		titleID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid title ID: %w", err)
		}
		reviewID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid review ID: %w", err)
		}

		httpClient, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := httpClient.DeleteReview(cmd.Context(), titleID, reviewID); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}

		color.Green("✓ Review #%d deleted", reviewID)
		return nil
	},
}

func init() {
	reviewCmd.AddCommand(listReviewsCmd)
	reviewCmd.AddCommand(addReviewCmd)
	reviewCmd.AddCommand(deleteReviewCmd)

	listReviewsCmd.Flags().Int("page", 1, "Page number")
}
