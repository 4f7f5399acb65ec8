package cmd

import (
	"fmt"

	"bookingwizard/models"
	"bookingwizard/services/wizard"

	"github.com/spf13/cobra"
)

var (
	validateName   string
	validateMethod string
	validateDetail string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check contact details the way the wizard's first step does",
	RunE: func(cmd *cobra.Command, args []string) error {
		method, err := models.ParseContactMethod(validateMethod)
		if err != nil {
			return err
		}

		data := models.NewFormData()
		data.Name = validateName
		data.ContactMethod = method
		data.ContactDetail = validateDetail

		out := cmd.OutOrStdout()
		res := wizard.ValidateStep1Strict(data)
		if !res.Valid() {
			fmt.Fprintf(out, "invalid %s: %s\n", res.Error.Field, res.Error.Message)
			return fmt.Errorf("contact details rejected")
		}

		fmt.Fprintln(out, "valid")
		if method != models.ContactEmail {
			national, _ := wizard.NormalizeUKPhone(validateDetail)
			fmt.Fprintf(out, "normalized number: %s\n", national)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateName, "name", "", "Full name")
	validateCmd.Flags().StringVar(&validateMethod, "method", string(models.ContactEmail), "Contact method (Email, Text, Phone)")
	validateCmd.Flags().StringVar(&validateDetail, "detail", "", "Email address or phone number")
	validateCmd.MarkFlagRequired("detail")
	rootCmd.AddCommand(validateCmd)
}
