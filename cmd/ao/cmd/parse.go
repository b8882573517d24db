package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/aolang/ao/internal/ast"
	"github.com/aolang/ao/internal/driver"
)

var (
	parseJSON  bool
	parseQuery string
	parseSet   string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse an .ao file and print its abstract syntax tree",
	Long: `Parse parses an ao program and prints its AST.

By default the tree prints as an indented outline. With --json it prints
as JSON instead; --query runs a gjson path expression against that JSON
and prints only the match, and --set applies an sjson patch before
printing — both let a developer poke at a serialized AST without
writing Go.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the AST as JSON")
	parseCmd.Flags().StringVar(&parseQuery, "query", "", "gjson path to extract from the JSON AST (implies --json)")
	parseCmd.Flags().StringVar(&parseSet, "set", "", "key=value sjson patch to apply to the JSON AST before printing (implies --json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	path := args[0]

	result, derr := driver.Load(settings, path)
	if derr != nil {
		fmt.Fprintln(os.Stderr, derr.Format(false))
		return fmt.Errorf("parsing %s failed", path)
	}
	if settings.Verbose {
		fmt.Printf("Parsed %s: %d tokens\n---\n", path, result.TokenCount)
	}

	if parseQuery != "" || parseSet != "" {
		parseJSON = true
	}

	if !parseJSON {
		dumpNode(result.Root, 0)
		return nil
	}

	data, err := json.Marshal(nodeToJSON(result.Root))
	if err != nil {
		return fmt.Errorf("marshaling AST: %w", err)
	}

	if parseSet != "" {
		kv := strings.SplitN(parseSet, "=", 2)
		if len(kv) != 2 {
			return fmt.Errorf("--set expects key=value, got %q", parseSet)
		}
		patched, err := sjson.SetBytes(data, kv[0], kv[1])
		if err != nil {
			return fmt.Errorf("applying --set patch: %w", err)
		}
		data = patched
	}

	if parseQuery != "" {
		res := gjson.GetBytes(data, parseQuery)
		fmt.Println(res.String())
		return nil
	}

	fmt.Println(string(data))
	return nil
}

func dumpNode(n *ast.Node, indent int) {
	prefix := strings.Repeat("  ", indent)
	if n.IsLeaf() {
		fmt.Printf("%s%s\n", prefix, n)
		return
	}
	fmt.Printf("%s%s\n", prefix, n.Kind)
	for _, c := range n.Children {
		dumpNode(c, indent+1)
	}
}

// jsonNode is the wire shape nodeToJSON builds: a flattened view of
// ast.Node that marshals cleanly regardless of which half of the
// tagged-sum struct is populated.
type jsonNode struct {
	Kind     string      `json:"kind,omitempty"`
	Leaf     string      `json:"leaf,omitempty"`
	Value    interface{} `json:"value,omitempty"`
	Pos      string      `json:"pos"`
	Children []*jsonNode `json:"children,omitempty"`
}

func nodeToJSON(n *ast.Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{Pos: n.Pos.String()}
	if n.IsLeaf() {
		switch n.Leaf {
		case ast.LeafNumber:
			jn.Leaf = "number"
			if n.NumIsFloat {
				jn.Value = n.FloatValue
			} else {
				jn.Value = n.IntValue
			}
		case ast.LeafString:
			jn.Leaf = "string"
			jn.Value = n.StringValue
		case ast.LeafBool:
			jn.Leaf = "bool"
			jn.Value = n.BoolValue
		case ast.LeafIdentifier:
			jn.Leaf = "identifier"
			jn.Value = n.Ident
		case ast.LeafType:
			jn.Leaf = "type"
			jn.Value = n.TypeHandle.String()
		}
		return jn
	}
	jn.Kind = n.Kind.String()
	for _, c := range n.Children {
		jn.Children = append(jn.Children, nodeToJSON(c))
	}
	return jn
}
