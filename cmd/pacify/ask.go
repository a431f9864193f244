package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gentlify/pacify/internal/application/usecases"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
)

type askOptions struct {
	mode    string
	name    string
	years   int
	months  int
	traits  []string
	intents []string
	phase1  string
	multi   bool
	asJSON  bool
}

// askCmd runs one message through the pipeline locally
func askCmd() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask a parenting question from the command line",
		Long: `Run a message through scope filter, knowledge selection, prompt,
model and validation, and print the answer. Nothing is stored.

Without an LLM API key the answer comes from canned responses.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", string(prompt.ModeUnified), "chat variant: mirror, expert, unified or classic")
	cmd.Flags().StringVar(&opts.name, "name", "", "child's name")
	cmd.Flags().IntVar(&opts.years, "years", 0, "child's age in years (1-18)")
	cmd.Flags().IntVar(&opts.months, "months", 0, "additional months (0-11)")
	cmd.Flags().StringSliceVar(&opts.traits, "traits", nil, "personality traits, e.g. sensibel,neugierig")
	cmd.Flags().StringSliceVar(&opts.intents, "intent", nil, "requested intents, e.g. loesung,verstehen")
	cmd.Flags().StringVar(&opts.phase1, "phase1", "", "mirror text from phase 1 (expert mode)")
	cmd.Flags().BoolVar(&opts.multi, "multi-child", false, "the question concerns several children")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the full result as JSON")

	return cmd
}

func runAsk(cmd *cobra.Command, message string, opts *askOptions) error {
	input, mode, err := opts.input(message)
	if err != nil {
		return err
	}

	catalog, err := newCatalog(cfg.Knowledge)
	if err != nil {
		return err
	}
	chatDeps := newChatDeps(catalog, newLLMService(), nil, nil)

	var uc ports.ChatUseCase
	switch mode {
	case prompt.ModeMirror:
		uc = usecases.NewMirrorChat(chatDeps)
	case prompt.ModeExpert:
		uc = usecases.NewExpertChat(chatDeps)
	case prompt.ModeClassic:
		uc = usecases.NewClassicChat(chatDeps)
	default:
		uc = usecases.NewUnifiedChat(chatDeps)
	}

	out, err := uc.Execute(cmd.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrScopeRejected) && out != nil {
			fmt.Fprintf(os.Stderr, "Out of scope: %s\n", out.ScopeCheck.ReferralType)
		}
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"mode":       out.Mode,
			"scopeCheck": out.ScopeCheck,
			"intents":    out.Intents,
			"knowledge":  out.Bundle,
			"result":     out.Result,
		})
	}

	if out.Referred() {
		fmt.Printf("[%s]\n", out.ScopeCheck.ReferralType)
	}
	fmt.Println(out.Result.Display())
	if !out.Referred() {
		fmt.Println()
		fmt.Printf("confidence=%.2f tokens=%d temperature=%.1f intents=%v\n",
			out.Result.Metadata.Confidence,
			out.Result.Metadata.TokensUsed,
			out.Result.Metadata.TemperatureUsed,
			models.IntentStrings(out.Intents))
	}
	return nil
}

// input validates the flags and builds the use case input.
func (o *askOptions) input(message string) (*ports.ChatInput, prompt.Mode, error) {
	mode := prompt.Mode(strings.ToLower(o.mode))
	switch mode {
	case prompt.ModeMirror, prompt.ModeExpert, prompt.ModeUnified, prompt.ModeClassic:
	default:
		return nil, "", fmt.Errorf("unknown mode %q", o.mode)
	}

	intents, err := models.ParseIntents(o.intents)
	if err != nil {
		return nil, "", err
	}

	input := &ports.ChatInput{
		Message:      message,
		Intents:      intents,
		Phase1Mirror: o.phase1,
		MultiChild:   o.multi,
	}

	if o.name != "" || o.years != 0 {
		profile := &models.ChildProfile{
			Name:      o.name,
			AgeYears:  o.years,
			AgeMonths: o.months,
		}
		for _, t := range o.traits {
			profile.Traits = append(profile.Traits, models.PersonalityTrait(strings.TrimSpace(t)))
		}
		if err := profile.Validate(); err != nil {
			return nil, "", err
		}
		input.Profile = profile
	}

	return input, mode, nil
}
