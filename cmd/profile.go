package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/dsamentor/internal/formatter"
	"github.com/abhisek/dsamentor/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the learner profile after config and flags are applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatter.ParseFormat(mustString(cmd, "output"))
		if err != nil {
			return err
		}
		p := current.profile
		out := cmd.OutOrStdout()

		switch format {
		case formatter.FormatJSON:
			data, err := json.MarshalIndent(p, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
		case formatter.FormatYAML:
			data, err := yaml.Marshal(p)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
		default:
			bold := color.New(color.Bold)
			bold.Fprintln(out, "👤 LEARNER PROFILE")
			fmt.Fprintf(out, "   Skill level:            %3.0f%%\n", p.SkillLevel*100)
			fmt.Fprintf(out, "   Programming experience: %3.0f%%\n", p.ProgrammingExperience*100)
			fmt.Fprintf(out, "   DSA knowledge:          %3.0f%%\n", p.DSAKnowledge*100)
			fmt.Fprintf(out, "   Learning style:         %s\n", p.LearningStyle)
			fmt.Fprintf(out, "   Preferred topics:       %s\n", strings.Join(profile.Sorted(p.PreferredTopics), ", "))
			fmt.Fprintf(out, "   Solved problems:        %s\n", strings.Join(profile.Sorted(p.SolvedProblems), ", "))
		}
		return nil
	},
}

func init() {
	profileCmd.Flags().StringP("output", "o", "human", "Output format: human, json or yaml")
}
