package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Edit    func(EditArgs) (Result, error)
	Move    func(MoveArgs) (Result, error)
	Drop    func(DropArgs) (Result, error)
	Delete  func(DeleteArgs) (Result, error)
	Search  func(FilterArgs) (Result, error)
	Label   func(FilterArgs) (Result, error)
	Overdue func(OverdueArgs) (Result, error)
	Export  func(ExportArgs) (Result, error)
	Import  func(ImportArgs) (Result, error)
	Theme   func(ThemeArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	case TypeMove:
		if handlers.Move == nil {
			return missing(cmd.Type)
		}
		return handlers.Move(*cmd.Move)
	case TypeDrop:
		if handlers.Drop == nil {
			return missing(cmd.Type)
		}
		return handlers.Drop(*cmd.Drop)
	case TypeDelete:
		if handlers.Delete == nil {
			return missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeSearch:
		if handlers.Search == nil {
			return missing(cmd.Type)
		}
		return handlers.Search(*cmd.Search)
	case TypeLabel:
		if handlers.Label == nil {
			return missing(cmd.Type)
		}
		return handlers.Label(*cmd.Label)
	case TypeOverdue:
		if handlers.Overdue == nil {
			return missing(cmd.Type)
		}
		return handlers.Overdue(*cmd.Overdue)
	case TypeExport:
		if handlers.Export == nil {
			return missing(cmd.Type)
		}
		return handlers.Export(*cmd.Export)
	case TypeImport:
		if handlers.Import == nil {
			return missing(cmd.Type)
		}
		return handlers.Import(*cmd.Import)
	case TypeTheme:
		if handlers.Theme == nil {
			return missing(cmd.Type)
		}
		return handlers.Theme(*cmd.Theme)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) (Result, error) {
	return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
