package handler

import (
	"errors"
	"fmt"

	"github.com/griffnb/core-raml/internal/domain"
)

const testPkg = "example.com/model"

var (
	stringType = &domain.Type{Kind: domain.KindPrimitive, Name: "string", Basic: "string"}
	intType    = &domain.Type{Kind: domain.KindPrimitive, Name: "int", Basic: "int"}
	boolType   = &domain.Type{Kind: domain.KindPrimitive, Name: "bool", Basic: "bool"}
	timeType   = &domain.Type{Kind: domain.KindPrimitive, Name: "Time", PkgPath: "time", Basic: "time.Time"}
)

func getter(name string, result *domain.Type, annotations ...domain.Annotation) *domain.Method {
	return &domain.Method{Name: name, Results: []*domain.Type{result}, Annotations: annotations}
}

func setter(name string, param *domain.Type) *domain.Method {
	return &domain.Method{Name: name, NumParams: 1}
}

func iface(name string, embeds []*domain.Type, methods ...*domain.Method) *domain.Type {
	return &domain.Type{
		Kind:    domain.KindInterface,
		Name:    name,
		PkgPath: testPkg,
		Embeds:  embeds,
		Methods: methods,
	}
}

func marked(t *domain.Type) *domain.Type {
	t.Annotations = append(t.Annotations, domain.Annotation{Kind: domain.AnnotationBuildType, Value: SimpleBuildType})
	return t
}

func sliceOf(t *domain.Type) *domain.Type {
	return &domain.Type{Kind: domain.KindSlice, Elem: t}
}

func pointerTo(t *domain.Type) *domain.Type {
	return &domain.Type{Kind: domain.KindPointer, Elem: t}
}

func mapOf(key, elem *domain.Type) *domain.Type {
	return &domain.Type{Kind: domain.KindMap, Key: key, Elem: elem}
}

// personFixture returns Named { GetName() string } and
// Person { Named; GetAge() int; SetAge(int) }.
func personFixture() (named, person *domain.Type) {
	named = iface("Named", nil, getter("GetName", stringType))
	person = marked(iface("Person", []*domain.Type{named},
		getter("GetAge", intType),
		setter("SetAge", intType),
	))
	return named, person
}

// recordingWriter collects the lines a handler declares.
type recordingWriter struct {
	lines []string
	err   error
}

func (w *recordingWriter) AppendLine(key, value string) error {
	if w.err != nil {
		return w.err
	}
	w.lines = append(w.lines, key+": "+value)
	return nil
}

var errDiskFull = errors.New("disk full")

type recordingLog struct {
	lines []string
}

func (l *recordingLog) Printf(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}
