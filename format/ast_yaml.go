package format

import (
	"io"

	"github.com/dhamidi/ldn/ldn"
	"gopkg.in/yaml.v3"
)

type ASTYAMLEncoder struct {
	w io.Writer
}

func NewASTYAMLEncoder(w io.Writer) *ASTYAMLEncoder {
	return &ASTYAMLEncoder{w: w}
}

func (e *ASTYAMLEncoder) Encode(doc *ldn.Document) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(documentToTree(doc)); err != nil {
		return err
	}
	return enc.Close()
}

func (e *ASTYAMLEncoder) MarshalText(doc *ldn.Document) ([]byte, error) {
	return yaml.Marshal(documentToTree(doc))
}
