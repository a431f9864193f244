package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gentlify/pacify/internal/knowledge"
)

// knowledgeCmd inspects the built-in knowledge stores
func knowledgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Inspect the built-in knowledge stores",
	}

	cmd.AddCommand(knowledgeKeywordsCmd())
	cmd.AddCommand(knowledgeFactsCmd())
	cmd.AddCommand(knowledgeCitationCmd())
	cmd.AddCommand(knowledgeBundleCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check that every evidence fact resolves to a citation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cfg.Knowledge)
			if err != nil {
				return err
			}
			fmt.Printf("OK: %d needs, %d evidence facts, %d interventions, %d age facts\n",
				len(catalog.Needs()), len(catalog.EvidenceFacts()),
				len(catalog.MicroInterventions()), len(catalog.AgeFacts()))
			return nil
		},
	})

	return cmd
}

func knowledgeKeywordsCmd() *cobra.Command {
	var ageMonths int

	cmd := &cobra.Command{
		Use:   "keywords <message>",
		Short: "Show the keywords and needs found in a message",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cfg.Knowledge)
			if err != nil {
				return err
			}

			keywords := knowledge.ExtractKeywords(strings.Join(args, " "))
			if len(keywords) == 0 {
				fmt.Println("No keywords found")
				return nil
			}
			fmt.Printf("Keywords: %s\n", strings.Join(keywords, ", "))

			for _, need := range catalog.RelevantNeeds(keywords, ageMonths, knowledge.DefaultMaxNeeds) {
				badge, _ := knowledge.Badge(need.Category)
				fmt.Printf("  %s %s (%s): %s\n", badge.Emoji, need.Name, need.Category, need.ParentResponse)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ageMonths, "age-months", 36, "child's age in months")
	return cmd
}

func knowledgeFactsCmd() *cobra.Command {
	var ageMonths int

	cmd := &cobra.Command{
		Use:   "facts [message]",
		Short: "List developmental facts for an age",
		Long: `List the developmental facts for an age in months. With a message,
only the facts matching its keywords are shown, best matches first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ageMonths < 0 {
				return fmt.Errorf("age-months must not be negative")
			}
			catalog, err := newCatalog(cfg.Knowledge)
			if err != nil {
				return err
			}

			var facts []knowledge.AgeFact
			if len(args) > 0 {
				keywords := knowledge.ExtractKeywords(strings.Join(args, " "))
				facts = catalog.RelevantAgeFacts(ageMonths, keywords, knowledge.DefaultMaxAgeFacts)
			} else {
				for _, f := range catalog.AgeFacts() {
					if f.Ages.Contains(ageMonths) {
						facts = append(facts, f)
					}
				}
			}

			if len(facts) == 0 {
				fmt.Printf("No facts for %d months\n", ageMonths)
				return nil
			}
			for _, f := range facts {
				fmt.Printf("%-12s %-11s %s\n", f.ID, f.Category, f.Fact)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&ageMonths, "age-months", 36, "child's age in months")
	return cmd
}

func knowledgeCitationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "citation <id>",
		Short: "Show a citation in short and full form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cfg.Knowledge)
			if err != nil {
				return err
			}

			c, ok := catalog.Citation(args[0])
			if !ok {
				return fmt.Errorf("citation %q not found", args[0])
			}
			fmt.Println(catalog.FormatCitation(c.ID, true))
			fmt.Println(catalog.FullReference(c.ID))
			if c.Summary != "" {
				fmt.Println()
				fmt.Println(c.Summary)
			}
			return nil
		},
	}
}

func knowledgeBundleCmd() *cobra.Command {
	var ageMonths int

	cmd := &cobra.Command{
		Use:   "bundle <message>",
		Short: "Print the knowledge bundle selected for a message as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := newCatalog(cfg.Knowledge)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(catalog.EnhancedResponse(strings.Join(args, " "), ageMonths))
		},
	}

	cmd.Flags().IntVar(&ageMonths, "age-months", 36, "child's age in months")
	return cmd
}
