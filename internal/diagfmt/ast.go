package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"ember/internal/ast"
	"ember/internal/source"
)

// ASTNodeOutput is the serialisable form of an AST node.
type ASTNodeOutput struct {
	Type     string          `json:"type" yaml:"type"`
	Kind     string          `json:"kind,omitempty" yaml:"kind,omitempty"`
	Span     SpanOutput      `json:"span" yaml:"span"`
	Value    string          `json:"value,omitempty" yaml:"value,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" yaml:"children,omitempty"`
}

// SpanOutput is a byte range; File is the FileSet index.
type SpanOutput struct {
	File  uint32 `json:"file" yaml:"file"`
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
}

func spanOutput(sp source.Span) SpanOutput {
	return SpanOutput{File: uint32(sp.File), Start: sp.Start, End: sp.End}
}

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTTree печатает программу деревом:
//
//	main.em (span: 1:1-1:7)
//	├─ Item[0]: TopLevelExpression (span: 1:1-1:3)
//	│  └─ Int 1 (span: 1:1-1:2)
//	└─ Item[1]: EmptyExpression (span: 1:4-1:5)
func FormatASTTree(w io.Writer, builder *ast.Builder, progID ast.ProgramID, fs *source.FileSet) error {
	root, err := buildProgramNode(builder, progID, fs)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, root.label); err != nil {
		return err
	}
	return writeChildren(w, root.children, "")
}

func writeChildren(w io.Writer, nodes []*treeNode, prefix string) error {
	for i, node := range nodes {
		branch, next := "├─ ", "│  "
		if i == len(nodes)-1 {
			branch, next = "└─ ", "   "
		}
		if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label); err != nil {
			return err
		}
		if err := writeChildren(w, node.children, prefix+next); err != nil {
			return err
		}
	}
	return nil
}

func buildProgramNode(builder *ast.Builder, progID ast.ProgramID, fs *source.FileSet) (*treeNode, error) {
	prog := builder.Programs.Get(progID)
	if prog == nil {
		return nil, fmt.Errorf("program %d not found", progID)
	}
	header := "Program"
	if fs != nil {
		if f := fs.Get(prog.Span.File); f != nil {
			header = f.FormatPath("auto", fs.BaseDir())
		}
	}
	root := &treeNode{label: fmt.Sprintf("%s (span: %s)", header, formatSpan(prog.Span, fs))}
	for idx, itemID := range prog.Items {
		node, err := buildItemNode(builder, itemID, fs, idx)
		if err != nil {
			return nil, err
		}
		root.children = append(root.children, node)
	}
	return root, nil
}

func buildItemNode(builder *ast.Builder, itemID ast.ItemID, fs *source.FileSet, idx int) (*treeNode, error) {
	item := builder.Items.Get(itemID)
	if item == nil {
		return &treeNode{label: fmt.Sprintf("Item[%d]: <nil>", idx)}, nil
	}
	node := &treeNode{
		label: fmt.Sprintf("Item[%d]: %s (span: %s)", idx, item.Kind, formatSpan(item.Span, fs)),
	}
	switch item.Kind {
	case ast.ItemEmpty:
	case ast.ItemExpr:
		data, _ := builder.Items.Expr(itemID)
		expr := builder.Exprs.Get(data.Expr)
		if expr == nil {
			return nil, fmt.Errorf("item %d: expression %d not found", itemID, data.Expr)
		}
		value, err := exprValue(builder, data.Expr)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, &treeNode{
			label: fmt.Sprintf("%s %s (span: %s)", expr.Kind, value, formatSpan(expr.Span, fs)),
		})
	default:
		return nil, fmt.Errorf("item %d: unknown kind %d", itemID, item.Kind)
	}
	return node, nil
}

// exprValue renders the literal payload of a leaf expression.
func exprValue(builder *ast.Builder, id ast.ExprID) (string, error) {
	expr := builder.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprInt:
		data, _ := builder.Exprs.Int(id)
		return data.Value.String(), nil
	case ast.ExprFloat:
		data, _ := builder.Exprs.Float(id)
		return strconv.FormatFloat(data.Value, 'g', -1, 64), nil
	case ast.ExprBool:
		data, _ := builder.Exprs.Bool(id)
		if data.Value {
			return "True", nil
		}
		return "False", nil
	case ast.ExprName:
		name, ok := builder.NameText(id)
		if !ok {
			return "", fmt.Errorf("expression %d: unknown name", id)
		}
		return name, nil
	default:
		return "", fmt.Errorf("expression %d: unknown kind %d", id, expr.Kind)
	}
}

// BuildASTOutput converts a program into the serialisable node tree.
func BuildASTOutput(builder *ast.Builder, progID ast.ProgramID) (ASTNodeOutput, error) {
	prog := builder.Programs.Get(progID)
	if prog == nil {
		return ASTNodeOutput{}, fmt.Errorf("program %d not found", progID)
	}
	out := ASTNodeOutput{Type: "Program", Span: spanOutput(prog.Span)}
	for _, itemID := range prog.Items {
		item := builder.Items.Get(itemID)
		if item == nil {
			return ASTNodeOutput{}, fmt.Errorf("item %d not found", itemID)
		}
		node := ASTNodeOutput{Type: "Item", Kind: item.Kind.String(), Span: spanOutput(item.Span)}
		if data, ok := builder.Items.Expr(itemID); ok {
			expr := builder.Exprs.Get(data.Expr)
			value, err := exprValue(builder, data.Expr)
			if err != nil {
				return ASTNodeOutput{}, err
			}
			node.Children = []ASTNodeOutput{{
				Type:  "Expr",
				Kind:  expr.Kind.String(),
				Span:  spanOutput(expr.Span),
				Value: value,
			}}
		}
		out.Children = append(out.Children, node)
	}
	return out, nil
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	output, err := BuildASTOutput(builder, progID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func FormatASTYAML(w io.Writer, builder *ast.Builder, progID ast.ProgramID) error {
	output, err := BuildASTOutput(builder, progID)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(output); err != nil {
		return err
	}
	return enc.Close()
}
