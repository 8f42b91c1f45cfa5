package visitor

// EventName is the bare name of a recorded event, independent of any
// payload it carried.
type EventName string

const (
	EventVariableDeclaration     EventName = "variable_declaration"
	EventVariableUse             EventName = "variable_use"
	EventVariableAssignment      EventName = "variable_assignment"
	EventPropertyDeclaration     EventName = "property_declaration"
	EventEnterBlockScope         EventName = "enter_block_scope"
	EventExitBlockScope          EventName = "exit_block_scope"
	EventEnterForScope           EventName = "enter_for_scope"
	EventExitForScope            EventName = "exit_for_scope"
	EventEnterClassScope         EventName = "enter_class_scope"
	EventExitClassScope          EventName = "exit_class_scope"
	EventEnterFunctionScope      EventName = "enter_function_scope"
	EventEnterNamedFunctionScope EventName = "enter_named_function_scope"
	EventExitFunctionScope       EventName = "exit_function_scope"
	EventEndOfModule             EventName = "end_of_module"
)

// Record is one entry of a Spy's log: the event name plus whichever
// payload field applies to it (Name for declarations/uses/assignments/
// properties/named-scope-enters, Kind alongside Name for declarations).
type Record struct {
	Event EventName
	Name  string
	Kind  Kind
}

// Spy is a recording Visitor used by tests: it keeps every event in
// order and offers a few convenience queries over the log.
type Spy struct {
	Records []Record
}

// NewSpy returns an empty Spy.
func NewSpy() *Spy {
	return &Spy{}
}

func (s *Spy) record(r Record) {
	s.Records = append(s.Records, r)
}

func (s *Spy) VariableDeclaration(name string, kind Kind) {
	s.record(Record{Event: EventVariableDeclaration, Name: name, Kind: kind})
}

func (s *Spy) VariableUse(name string) {
	s.record(Record{Event: EventVariableUse, Name: name})
}

func (s *Spy) VariableAssignment(name string) {
	s.record(Record{Event: EventVariableAssignment, Name: name})
}

func (s *Spy) PropertyDeclaration(name string) {
	s.record(Record{Event: EventPropertyDeclaration, Name: name})
}

func (s *Spy) EnterBlockScope() { s.record(Record{Event: EventEnterBlockScope}) }
func (s *Spy) ExitBlockScope()  { s.record(Record{Event: EventExitBlockScope}) }

func (s *Spy) EnterForScope() { s.record(Record{Event: EventEnterForScope}) }
func (s *Spy) ExitForScope()  { s.record(Record{Event: EventExitForScope}) }

func (s *Spy) EnterClassScope() { s.record(Record{Event: EventEnterClassScope}) }
func (s *Spy) ExitClassScope()  { s.record(Record{Event: EventExitClassScope}) }

func (s *Spy) EnterFunctionScope() { s.record(Record{Event: EventEnterFunctionScope}) }
func (s *Spy) EnterNamedFunctionScope(name string) {
	s.record(Record{Event: EventEnterNamedFunctionScope, Name: name})
}
func (s *Spy) ExitFunctionScope() { s.record(Record{Event: EventExitFunctionScope}) }

func (s *Spy) EndOfModule() { s.record(Record{Event: EventEndOfModule}) }

// Names returns the bare event-name sequence, discarding payloads —
// handy for asserting shape without caring about identifier text.
func (s *Spy) Names() []EventName {
	out := make([]EventName, len(s.Records))
	for i, r := range s.Records {
		out[i] = r.Event
	}
	return out
}
