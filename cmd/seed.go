package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/history"
)

var seedCount int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample conversations for trying the app",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedCount, "count", "n", len(sampleConversations), "Number of sample conversations to insert")
	rootCmd.AddCommand(seedCmd)
}

type sampleConversation struct {
	title string
	age   time.Duration
	turns []string // alternating user/assistant
}

var sampleConversations = []sampleConversation{
	{
		title: "Planning a bike trip through Portugal",
		age:   2 * time.Hour,
		turns: []string{
			"I want to cycle from Porto to Lisbon in about a week. Is that realistic?",
			"Very realistic. The coastal route is around 400km, so 60-70km a day with a rest day in Coimbra works well. September is the best month for it.",
			"What about luggage?",
			"Pack light and use rear panniers. Most pousadas will hold bags if you book ahead, and the train back from Lisbon takes bikes for a small fee.",
		},
	},
	{
		title: "Debugging a flaky integration test",
		age:   26 * time.Hour,
		turns: []string{
			"Our payment test fails maybe once in twenty runs with a timeout. Where do I start?",
			"Start by capturing the seed and the full log on failure. Intermittent timeouts in integration tests usually come down to an unawaited async call or a shared fixture leaking state between runs.",
			"It turned out to be a shared database container.",
			"That fits. Give each test run its own schema or transaction rollback, and the flake should disappear.",
		},
	},
	{
		title: "Sourdough starter troubleshooting",
		age:   4 * 24 * time.Hour,
		turns: []string{
			"My starter smells like acetone and barely rises. Can it be saved?",
			"Yes. The acetone smell means it is hungry. Feed it twice daily at 1:5:5 for three days, keep it around 24C, and the yeast population will recover.",
		},
	},
	{
		title: "Explaining CRDTs to a new teammate",
		age:   9 * 24 * time.Hour,
		turns: []string{
			"What is the simplest way to explain a CRDT?",
			"A data structure where any two replicas that have seen the same set of updates are guaranteed to be in the same state, regardless of the order the updates arrived. Merging is built into the type, so there is nothing to coordinate.",
			"And a G-Counter is the hello world of CRDTs?",
			"Exactly. One counter slot per replica, each replica only increments its own slot, and the merged value is the element-wise max. Sum the slots to read the total.",
		},
	},
	{
		title: "Choosing a first telescope",
		age:   40 * 24 * time.Hour,
		turns: []string{
			"Budget is about 400. Refractor or reflector?",
			"At that budget an 8-inch Dobsonian reflector wins easily: the most aperture per currency unit, no tracking electronics to break, and it excels on the moon, planets, and brighter deep-sky objects.",
		},
	},
}

func runSeed(cmd *cobra.Command, args []string) error {
	if seedCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	_, st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	now := time.Now()

	created := 0
	for i := 0; i < seedCount; i++ {
		sample := sampleConversations[i%len(sampleConversations)]

		title := sample.title
		if i >= len(sampleConversations) {
			title = fmt.Sprintf("%s (%d)", sample.title, i/len(sampleConversations)+1)
		}

		conv, err := st.Create(ctx, title)
		if err != nil {
			return fmt.Errorf("error creating conversation %q: %w", title, err)
		}

		when := now.Add(-sample.age)
		for turn, content := range sample.turns {
			role := history.RoleUser
			if turn%2 == 1 {
				role = history.RoleAssistant
			}
			msg := history.Message{
				ConversationID: conv.ID,
				Role:           role,
				Content:        content,
				CreatedAt:      when.Add(time.Duration(turn) * time.Minute),
			}
			if err := st.AddMessage(ctx, msg); err != nil {
				return fmt.Errorf("error adding message to %q: %w", title, err)
			}
		}
		created++
	}

	fmt.Printf("Seeded %d conversation(s).\n", created)
	return nil
}
