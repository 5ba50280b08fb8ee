// Package script runs clip and frame scripts written in Go with the yaegi
// interpreter.
//
// A script is the body of a function. It sees the clip API through a
// dot-imported package:
//
//	if IsKeyJustPressed("space") {
//		GotoAndPlay(1)
//	}
//	This().SetRotation(This().Transformation.Rotation + 5)
package script

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/wickgo/wick"
)

// header precedes every script on a single line, so script line n is line
// n+1 of the evaluated source.
const header = `package main; import . "wick"; var _ = Event; func main() {`

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 2 * time.Second

// errPos matches the "line:column: message" part of interpreter errors.
var errPos = regexp.MustCompile(`(\d+):(\d+): (.*)`)

// Runner implements wick.ScriptRunner. Each Execute call uses a fresh
// interpreter, so scripts share no state except through the project.
type Runner struct {
	// Stdout receives output printed by scripts. Defaults to io.Discard.
	Stdout io.Writer
	// Timeout bounds each execution. Zero means DefaultTimeout.
	Timeout time.Duration
}

// New returns a runner with default settings.
func New() *Runner {
	return &Runner{Stdout: io.Discard, Timeout: DefaultTimeout}
}

// Execute runs source as the handler of event with scope as This. Compile
// errors, runtime errors and panics are returned as *wick.ScriptError with
// the line number counted from the first line of source.
func (r *Runner) Execute(source, event string, scope *wick.Clip) (err error) {
	out := r.Stdout
	if out == nil {
		out = io.Discard
	}
	// The interpreter reports the position of runtime panics on stderr.
	var stderr bytes.Buffer
	in := interp.New(interp.Options{Stdout: out, Stderr: &stderr})
	if err := in.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("script: load stdlib: %w", err)
	}
	if err := in.Use(Exports(scope, event)); err != nil {
		return fmt.Errorf("script: load api: %w", err)
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	defer func() {
		if rec := recover(); rec != nil {
			err = &wick.ScriptError{Message: fmt.Sprint(rec)}
		}
	}()

	_, err = in.EvalWithContext(ctx, header+"\n"+source+"\n}")
	if err != nil {
		return toScriptError(err, stderr.String())
	}
	return nil
}

// toScriptError extracts the message and script-relative line of an
// interpreter error. stderr is the interpreter's error output.
func toScriptError(err error, stderr string) *wick.ScriptError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &wick.ScriptError{Message: "script timed out"}
	}

	msg, where := err.Error(), err.Error()
	var pan interp.Panic
	if errors.As(err, &pan) {
		msg = fmt.Sprint(pan.Value)
		where = stderr
	}

	se := &wick.ScriptError{Message: msg}
	if m := errPos.FindStringSubmatch(where); m != nil {
		line, _ := strconv.Atoi(m[1])
		se.LineNumber = max(line-1, 0)
		if where == msg {
			se.Message = strings.TrimSpace(m[3])
		}
	}
	return se
}

// Exports returns the API symbols seen by a script: the scope clip, its
// timeline controls and the project's input state. Symbols are exported
// under the import path "wick".
func Exports(scope *wick.Clip, event string) interp.Exports {
	p := scope.Project()
	tl := scope.Timeline()

	symbols := map[string]reflect.Value{
		"This":  reflect.ValueOf(func() *wick.Clip { return scope }),
		"Event": reflect.ValueOf(func() string { return event }),

		"Stop":          reflect.ValueOf(tl.Stop),
		"Play":          reflect.ValueOf(tl.Play),
		"GotoAndStop":   reflect.ValueOf(tl.GotoAndStop),
		"GotoAndPlay":   reflect.ValueOf(tl.GotoAndPlay),
		"GotoNextFrame": reflect.ValueOf(tl.GotoNextFrame),
		"GotoPrevFrame": reflect.ValueOf(tl.GotoPrevFrame),
		"Playhead":      reflect.ValueOf(tl.Playhead),

		"Parent": reflect.ValueOf(scope.ParentClip),
		"Print": reflect.ValueOf(func(args ...any) {
			wick.Logger().Info("script", "clip", scope.Identifier, "msg", fmt.Sprint(args...))
		}),
	}

	if p != nil {
		symbols["Project"] = reflect.ValueOf(func() *wick.Project { return p })
		symbols["Key"] = reflect.ValueOf(p.CurrentKey)
		symbols["KeysDown"] = reflect.ValueOf(p.KeysDown)
		symbols["IsKeyDown"] = reflect.ValueOf(p.IsKeyDown)
		symbols["IsKeyJustPressed"] = reflect.ValueOf(p.IsKeyJustPressed)
		symbols["IsMouseDown"] = reflect.ValueOf(p.IsMouseDown)
		symbols["MouseX"] = reflect.ValueOf(func() float64 { return p.MousePosition().X })
		symbols["MouseY"] = reflect.ValueOf(func() float64 { return p.MousePosition().Y })
		symbols["PlaySound"] = reflect.ValueOf(p.PlaySound)
		symbols["StopAllSounds"] = reflect.ValueOf(p.StopAllSounds)
	}

	return interp.Exports{"wick/wick": symbols}
}
