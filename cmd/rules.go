package cmd

import (
	"bytes"
	"fmt"
	"os"

	"golang-ifrename/internal/adapter/infrastructure/file"
	"golang-ifrename/internal/pkg/logging"
	"golang-ifrename/internal/pkg/rules"

	"github.com/spf13/cobra"
)

var (
	methodFlag string
	outputFlag string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print static rules that pin the current interface names",
	Long: `Print a static rules file that pins every eth<N> interface to its current
name, identifying the hardware by the chosen method (mac, pci, ppn or label).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch methodFlag {
		case rules.MethodMAC, rules.MethodPCI, rules.MethodPPN, rules.MethodLabel:
		default:
			return fmt.Errorf("unknown method %q", methodFlag)
		}

		current, err := newRenameManager().CurrentRules(cmd.Context(), methodFlag)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if err := rules.WriteRuleFile(&buf, current); err != nil {
			return err
		}

		if outputFlag == "" || outputFlag == "-" {
			_, err := os.Stdout.Write(buf.Bytes())
			return err
		}
		if err := file.NewManagerAdapter().WriteFile(outputFlag, buf.Bytes(), 0644); err != nil {
			return err
		}
		logging.WithComponent("rules").WithFields(map[string]interface{}{
			"file":  outputFlag,
			"rules": len(current),
		}).Info("Wrote static rules")
		return nil
	},
}

func init() {
	rulesCmd.Flags().StringVarP(&methodFlag, "method", "m", rules.MethodMAC, "How to identify interfaces (mac, pci, ppn, label)")
	rulesCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the rules to this file instead of stdout")
	rootCmd.AddCommand(rulesCmd)
}
