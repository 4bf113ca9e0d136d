package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	jsonforms "github.com/zhibinjin/jsonforms"
	"github.com/zhibinjin/jsonforms/editors"
	"github.com/zhibinjin/jsonforms/schema"
	"github.com/zhibinjin/jsonforms/validate"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "inspect":
		inspectCmd(os.Args[2:])
	case "apply":
		applyCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jsonforms CLI\n\nUsage:\n  jsonforms inspect -schema form.json\n  jsonforms apply -schema form.json -value value.json\n  jsonforms check -schema form.json -value value.json\n\nSchemas may be .json or .yaml/.yml.")
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "schema document")
	_ = fs.Parse(args)
	form := buildForm(*schemaPath)

	jsonforms.Walk(form.Root(), func(n jsonforms.Node) bool {
		path := n.Path()
		if path == "" {
			path = "/"
		}
		switch v := n.(type) {
		case *jsonforms.LeafField:
			fmt.Printf("%-40s leaf   editor=%s\n", path, v.EditorKind())
		case *jsonforms.ObjectGroup:
			names := make([]string, 0)
			for _, c := range v.ActiveChildren() {
				names = append(names, c.Name())
			}
			fmt.Printf("%-40s object active=[%s]\n", path, strings.Join(names, " "))
		case *jsonforms.ArrayList:
			fmt.Printf("%-40s array  items=%d\n", path, v.Len())
		case *jsonforms.ArrayItem:
			fmt.Printf("%-40s item   index=%d\n", path, v.Index())
		}
		return true
	})
}

func applyCmd(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "schema document")
	valuePath := fs.String("value", "", "value document")
	keepNulls := fs.Bool("keep-nulls", false, "keep null object entries")
	_ = fs.Parse(args)

	form := buildForm(*schemaPath)
	applyValue(form, *valuePath)
	out, err := form.ValueJSON(jsonforms.GetOpt{KeepNulls: *keepNulls})
	if err != nil {
		fatalf("value: %v", err)
	}
	fmt.Println(string(out))
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "schema document")
	valuePath := fs.String("value", "", "value document")
	_ = fs.Parse(args)

	form := buildForm(*schemaPath)
	applyValue(form, *valuePath)

	doc, err := schemaJSON(*schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	v, err := validate.Compile(doc)
	if err != nil {
		fatalf("%v", err)
	}
	findings, err := v.Apply(form)
	if err != nil {
		fatalf("%v", err)
	}
	if len(findings) == 0 {
		fmt.Println("ok")
		return
	}
	for _, f := range findings {
		fmt.Printf("%s\t%s\n", f.Pointer, f.Message)
	}
	os.Exit(1)
}

func buildForm(schemaPath string) *jsonforms.Form {
	if schemaPath == "" {
		fatalf("-schema is required")
	}
	s, err := loadSchema(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	form, err := jsonforms.New(s)
	if err != nil {
		fatalf("compile: %v", err)
	}
	if err := form.Attach(editors.Default()); err != nil {
		fatalf("attach: %v", err)
	}
	return form
}

func applyValue(form *jsonforms.Form, valuePath string) {
	if valuePath == "" {
		fatalf("-value is required")
	}
	data, err := os.ReadFile(valuePath)
	if err != nil {
		fatalf("value: %v", err)
	}
	if err := form.ApplyJSON(data, jsonforms.SetOpt{}); err != nil {
		fatalf("apply: %v", err)
	}
}

func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return schema.FromYAML(data)
	default:
		return schema.FromJSON(data)
	}
}

// schemaJSON returns the document as JSON for the validator, re-encoding
// YAML documents.
func schemaJSON(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		s, err := schema.FromYAML(data)
		if err != nil {
			return nil, err
		}
		return json.Marshal(s)
	default:
		return data, nil
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
