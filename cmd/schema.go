package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/watchtime-cli/watchtime/report"
)

func init() {
	rootCmd.AddCommand(schemaCmd)

	schemaCmd.Flags().BoolP("response", "r", false, "Generate the JSON Schema of the endpoint response instead of the payload")
}

// reportSchema reflects the payload, or the response when response is set.
func reportSchema(response bool) *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.DoNotReference = true
	reflector.Namer = func(t reflect.Type) string {
		return "watchtime." + t.Name()
	}

	if response {
		return reflector.Reflect(&report.Response{})
	}
	return reflector.Reflect(&report.Payload{})
}

// schemaCmd prints the JSON schema of the report contract.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the watch time report",
	Long: `Generate the JSON schema of the watch time report.
The payload is sent form-encoded; the schema documents its fields and types.`,
	Run: func(cmd *cobra.Command, args []string) {
		schema := reportSchema(lo.Must(cmd.Flags().GetBool("response")))

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(schema))
	},
}
