package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeEdit    Type = "edit"
	TypeMove    Type = "move"
	TypeDrop    Type = "drop"
	TypeDelete  Type = "delete"
	TypeSearch  Type = "search"
	TypeLabel   Type = "label"
	TypeOverdue Type = "overdue"
	TypeExport  Type = "export"
	TypeImport  Type = "import"
	TypeTheme   Type = "theme"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	List   string
	Title  string
	Labels string
	Due    string
}

type EditArgs struct {
	ID string
}

type MoveArgs struct {
	ID        string
	Direction string
}

type DropArgs struct {
	ID   string
	List string
}

type DeleteArgs struct {
	ID string
}

// FilterArgs carries the text of a search or label command. Empty text
// clears the filter.
type FilterArgs struct {
	Text string
}

type OverdueArgs struct {
	On bool
}

type ExportArgs struct {
	Path string
}

type ImportArgs struct {
	Path string
}

type ThemeArgs struct {
	Mode string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Edit    *EditArgs
	Move    *MoveArgs
	Drop    *DropArgs
	Delete  *DeleteArgs
	Search  *FilterArgs
	Label   *FilterArgs
	Overdue *OverdueArgs
	Export  *ExportArgs
	Import  *ImportArgs
	Theme   *ThemeArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		id, err := singleID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeEdit, Raw: input, Edit: &EditArgs{ID: id}}, nil
	case TypeMove:
		return parseMove(input, args)
	case TypeDrop:
		if len(args) != 2 {
			return Command{}, invalid("drop requires a card id and a list")
		}
		return Command{Type: TypeDrop, Raw: input, Drop: &DropArgs{ID: args[0], List: strings.ToLower(args[1])}}, nil
	case TypeDelete:
		id, err := singleID(head, args)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: &DeleteArgs{ID: id}}, nil
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &FilterArgs{Text: strings.Join(args, " ")}}, nil
	case TypeLabel:
		return Command{Type: TypeLabel, Raw: input, Label: &FilterArgs{Text: strings.Join(args, " ")}}, nil
	case TypeOverdue:
		return parseOverdue(input, args)
	case TypeExport:
		if len(args) > 1 {
			return Command{}, invalid("export takes at most one path")
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: path}}, nil
	case TypeImport:
		if len(args) != 1 {
			return Command{}, invalid("import requires a file path")
		}
		return Command{Type: TypeImport, Raw: input, Import: &ImportArgs{Path: args[0]}}, nil
	case TypeTheme:
		return parseTheme(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads "add <list> <title...> [labels:a,b] [due:YYYY-MM-DD]".
// The options may appear anywhere after the list.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("add requires a list and a title")
	}
	out := AddArgs{List: strings.ToLower(args[0])}
	title := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "labels:"):
			out.Labels = arg[len("labels:"):]
		case strings.HasPrefix(lower, "due:"):
			out.Due = arg[len("due:"):]
		default:
			title = append(title, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(title, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("move requires a card id and left|right")
	}
	dir := strings.ToLower(args[1])
	if dir != "left" && dir != "right" {
		return Command{}, invalid(fmt.Sprintf("move direction must be left or right, got %q", args[1]))
	}
	return Command{Type: TypeMove, Raw: raw, Move: &MoveArgs{ID: args[0], Direction: dir}}, nil
}

func parseOverdue(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("overdue requires on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Type: TypeOverdue, Raw: raw, Overdue: &OverdueArgs{On: true}}, nil
	case "off":
		return Command{Type: TypeOverdue, Raw: raw, Overdue: &OverdueArgs{On: false}}, nil
	default:
		return Command{}, invalid(fmt.Sprintf("overdue expects on or off, got %q", args[0]))
	}
}

func parseTheme(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("theme requires dark, light or toggle")
	}
	mode := strings.ToLower(args[0])
	switch mode {
	case "dark", "light", "toggle":
		return Command{Type: TypeTheme, Raw: raw, Theme: &ThemeArgs{Mode: mode}}, nil
	default:
		return Command{}, invalid(fmt.Sprintf("unknown theme %q", args[0]))
	}
}

func singleID(head string, args []string) (string, error) {
	if len(args) != 1 {
		return "", invalid(head + " requires a card id")
	}
	return args[0], nil
}

func invalid(msg string) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
}
