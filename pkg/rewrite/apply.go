package rewrite

import (
	"bytes"
	"context"
	"fmt"
	"sort"
)

// Generate materializes pending imports, splices all queued edits over the
// original source in one pass, and re-parses the result. An empty queue
// returns the input verbatim. On any error the original text is the only
// text that exists; nothing is partially applied.
func (q *Queue) Generate(ctx context.Context) (string, error) {
	edits := make([]Edit, len(q.edits))
	copy(edits, q.edits)

	edits = append(edits, q.importEdits()...)

	if len(edits) == 0 {
		return string(q.src), nil
	}

	for _, e := range edits {
		if !e.valid(len(q.src)) {
			return "", fmt.Errorf("%w: %s", ErrInvalidEdit, e)
		}
	}

	sortEdits(edits)

	var buf bytes.Buffer

	cursor := 0

	for _, e := range edits {
		if e.Start < cursor {
			return "", fmt.Errorf("%w: %s", ErrOverlappingEdits, e)
		}

		buf.Write(q.src[cursor:e.Start])
		buf.WriteString(e.Text)
		cursor = e.End
	}

	buf.Write(q.src[cursor:])

	out := buf.String()

	if err := q.validate(ctx, out); err != nil {
		return "", err
	}

	return out, nil
}

// importEdits turns the pending import specs into concrete edits. Specs
// whose source already has an import statement regenerate that statement in
// place; new sources are inserted together after the last existing import,
// sorted by source for deterministic output.
func (q *Queue) importEdits() []Edit {
	if len(q.imports) == 0 {
		return nil
	}

	existing := make(map[string]int)

	infos := q.tree.Imports()
	for i, info := range infos {
		existing[info.Source] = i
	}

	sources := make([]string, 0, len(q.imports))
	for source := range q.imports {
		sources = append(sources, source)
	}

	sort.Strings(sources)

	var (
		edits    []Edit
		fresh    []string
		insertAt = q.topLevelInsertPos()
	)

	for _, source := range sources {
		spec := q.imports[source]

		idx, ok := existing[source]
		if !ok {
			fresh = append(fresh, spec.render())

			continue
		}

		merged := specFromInfo(infos[idx])
		merged.merge(*spec)

		rendered := merged.render()
		if rendered == infos[idx].Node.Text() {
			continue
		}

		edits = append(edits, Edit{
			Kind:     EditReplace,
			Start:    infos[idx].Node.Start(),
			End:      infos[idx].Node.End(),
			Text:     rendered,
			Priority: PriorityImport,
			Desc:     "merge import " + source,
		})
	}

	if len(fresh) > 0 {
		text := ""
		for _, stmt := range fresh {
			text += "\n" + stmt
		}

		if insertAt == 0 {
			text = text[1:] + "\n"
		}

		edits = append(edits, Edit{
			Kind:     EditInsert,
			Start:    insertAt,
			End:      insertAt,
			Text:     text,
			Priority: PriorityImport,
			Desc:     "add imports",
		})
	}

	return edits
}

// validate re-parses the spliced output and rejects it when the parse
// contains any ERROR or MISSING node.
func (q *Queue) validate(ctx context.Context, out string) error {
	tree, err := q.parser.Parse(ctx, []byte(out))
	if err != nil {
		return err
	}
	defer tree.Close()

	if issues := tree.Issues(); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	return nil
}
