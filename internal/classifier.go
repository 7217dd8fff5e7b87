package internal

import "strings"

// Classify maps a raw record to its typed entries. Most records yield a
// single entry; an assistant record carrying inline tool_use descriptors
// yields the assistant entry followed by one ToolInvocation per descriptor,
// in order. Records of unknown or malformed shape degrade to KindOther —
// classification never fails.
func Classify(rec RawRecord) []ClassifiedEntry {
	recType, ok := stringField(rec, "type")
	if !ok {
		return []ClassifiedEntry{{Kind: KindOther}}
	}

	switch recType {
	case "human", "user":
		return []ClassifiedEntry{{
			Kind:      KindUser,
			Timestamp: timestampField(rec),
			Content:   extractContent(rec),
		}}
	case "assistant":
		entries := []ClassifiedEntry{{
			Kind:      KindAssistant,
			Timestamp: timestampField(rec),
			Content:   extractContent(rec),
		}}
		entries = append(entries, inlineToolUses(rec)...)
		return entries
	case "tool_use":
		tool, ok := stringField(rec, "tool")
		if !ok {
			return []ClassifiedEntry{{Kind: KindOther}}
		}
		return []ClassifiedEntry{{
			Kind:  KindToolInvocation,
			Tool:  tool,
			Input: mapField(rec, "input"),
		}}
	case "tool_result":
		return []ClassifiedEntry{{Kind: KindToolResult}}
	default:
		return []ClassifiedEntry{{Kind: KindOther}}
	}
}

// extractContent normalizes the message payload to a single string.
// Handled shapes: message as a plain string, message.content as a plain
// string, message.content as a list of typed blocks (textual blocks are
// concatenated, non-textual ones discarded), and a top-level content
// string as a last resort.
func extractContent(rec RawRecord) string {
	switch msg := rec["message"].(type) {
	case string:
		return msg
	case map[string]interface{}:
		switch content := msg["content"].(type) {
		case string:
			return content
		case []interface{}:
			var texts []string
			for _, block := range content {
				b, ok := block.(map[string]interface{})
				if !ok {
					continue
				}
				if blockType, _ := b["type"].(string); blockType != "text" {
					continue
				}
				if text, ok := b["text"].(string); ok {
					texts = append(texts, text)
				}
			}
			return strings.Join(texts, "\n")
		}
	}

	if content, ok := stringField(rec, "content"); ok {
		return content
	}

	return ""
}

// inlineToolUses extracts tool invocations embedded in an assistant
// record's message.tool_use list.
func inlineToolUses(rec RawRecord) []ClassifiedEntry {
	msg, ok := rec["message"].(map[string]interface{})
	if !ok {
		return nil
	}
	uses, ok := msg["tool_use"].([]interface{})
	if !ok {
		return nil
	}

	var entries []ClassifiedEntry
	for _, use := range uses {
		u, ok := use.(map[string]interface{})
		if !ok {
			continue
		}
		name, ok := u["name"].(string)
		if !ok {
			// Some transcripts carry the tool name under "type" instead.
			if name, ok = u["type"].(string); !ok {
				continue
			}
		}
		input, _ := u["input"].(map[string]interface{})
		entries = append(entries, ClassifiedEntry{
			Kind:  KindToolInvocation,
			Tool:  name,
			Input: input,
		})
	}
	return entries
}

func stringField(rec RawRecord, key string) (string, bool) {
	s, ok := rec[key].(string)
	return s, ok
}

func mapField(rec RawRecord, key string) map[string]interface{} {
	m, _ := rec[key].(map[string]interface{})
	return m
}

func timestampField(rec RawRecord) string {
	ts, _ := stringField(rec, "timestamp")
	return ts
}
