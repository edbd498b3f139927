// Released under an MIT license. See LICENSE.

package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/michaelmacinnis/ply/internal/common/fault"
	"github.com/michaelmacinnis/ply/internal/common/interface/cell"
	"github.com/michaelmacinnis/ply/internal/common/interface/literal"
	"github.com/michaelmacinnis/ply/internal/common/type/native"
	"github.com/michaelmacinnis/ply/internal/common/type/num"
)

type warnings struct {
	sync.Mutex
	msgs []string
}

func (w *warnings) add(msg string) {
	w.Lock()
	defer w.Unlock()

	w.msgs = append(w.msgs, msg)
}

func setup(t *testing.T) (*T, *warnings, *bytes.Buffer) {
	t.Helper()

	w := &warnings{}
	out := &bytes.Buffer{}

	e, err := New(Options{Stdout: out, Warn: w.add, Workers: 4})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	return e, w, out
}

func eval(t *testing.T, e *T, text string) (cell.I, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.EvalString(ctx, "test", text)
}

func expect(t *testing.T, e *T, text, want string) {
	t.Helper()

	v, err := eval(t, e, text)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", text, err)
	}

	if got := literal.String(v); got != want {
		t.Fatalf("%s: expected %s, got %s", text, want, got)
	}
}

func failure(t *testing.T, e *T, text string) *fault.T {
	t.Helper()

	_, err := eval(t, e, text)
	if err == nil {
		t.Fatalf("%s: expected an error", text)
	}

	return fault.From(err)
}

func TestLiterals(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `42`, `42`)
	expect(t, e, `"text"`, `"text"`)
	expect(t, e, `:k`, `:k`)
	expect(t, e, `[1 (+ 1 1) 3]`, `[1 2 3]`)
	expect(t, e, `{:a (+ 1 2)}`, `{:a 3}`)
	expect(t, e, `'(a b)`, `(a b)`)
	expect(t, e, `()`, `()`)
	expect(t, e, "`(1 ~(+ 1 1) ~@[3 4])", `(1 2 3 4)`)
}

func TestLoopRecur(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(loop [i 5 acc 1] (if (= i 0) acc (recur (- i 1) (* acc i))))`, `120`)
	expect(t, e, `(loop [i 0] (if (= i 10000) i (recur (inc i))))`, `10000`)

	if f := failure(t, e, `(loop [i 0] (+ 1 (recur i)))`); f.Kind != fault.KindSyntax {
		t.Fatalf("recur outside tail position should be a syntax fault, got %v", f)
	}
}

func TestLoopStackIsConstant(t *testing.T) {
	e, _, _ := setup(t)

	e.global.Define("frames", native.Plain("frames", 0, 0, func([]cell.I) (cell.I, error) {
		pcs := make([]uintptr, 1<<16)

		return num.NewInt(int64(runtime.Callers(0, pcs))), nil
	}))

	depth := func(n int) string {
		t.Helper()

		v, err := eval(t, e, strings.ReplaceAll(
			`(loop [i 0 d 0] (if (= i N) d (recur (inc i) (frames))))`, "N", strconv.Itoa(n),
		))
		if err != nil {
			t.Fatal(err)
		}

		return literal.String(v)
	}

	if short, long := depth(10), depth(10000); short != long {
		t.Fatalf("stack grew with iterations: %s frames after 10, %s after 10000", short, long)
	}
}

func TestClosures(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(defn adder [n] (fn [x] (+ x n))) ((adder 2) 40)`, `42`)
	expect(t, e, `((fn fact [n] (if (= n 0) 1 (* n (fact (- n 1))))) 5)`, `120`)
	expect(t, e, `((fn [a & rest] rest) 1 2 3)`, `(2 3)`)
	expect(t, e, `(let [[a b] [1 2] c (+ a b)] c)`, `3`)

	if f := failure(t, e, `((fn [a b] a) 1)`); f.Kind != fault.KindArity {
		t.Fatalf("expected an arity fault, got %v", f)
	}
}

func TestTry(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(try (+ 1 2))`, `3`)
	expect(t, e, `(error? (try (/ 1 0)))`, `true`)
	expect(t, e, `(:kind (try (error "boom" 7)))`, `:user`)
	expect(t, e, `(:value (try (error "boom" 7)))`, `7`)

	v, err := eval(t, e, `(error-message (try (/ 1 0)))`)
	if err != nil || !strings.Contains(literal.String(v), "division by zero") {
		t.Fatalf("unexpected message %v, %v", v, err)
	}
}

func TestPipelines(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(3 |> inc |> (* 2))`, `8`)
	expect(t, e, `([1 2 3] ||> inc)`, `[2 3 4]`)

	_, err := eval(t, e, `
		(def hits (atom 0))
		(defn bump [x] (swap! hits inc) x)
	`)
	if err != nil {
		t.Fatal(err)
	}

	expect(t, e, `(error? ((err "bad") |>? bump |>? bump))`, `true`)
	expect(t, e, `@hits`, `0`)

	expect(t, e, `(error? ((err "bad") |> bump))`, `true`)
	expect(t, e, `@hits`, `1`)

	expect(t, e, `(1 |>? bump |>? inc)`, `2`)
	expect(t, e, `@hits`, `2`)
}

func TestDefer(t *testing.T) {
	e, _, out := setup(t)

	_, err := eval(t, e, `
		(defn f []
		  (defer (print "a"))
		  (defer (print "b"))
		  (print "c")
		  :done)
		(f)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if got := out.String(); got != "cba" {
		t.Fatalf("expected defers to run last in first out, got %q", got)
	}

	out.Reset()

	_, err = eval(t, e, `
		(defn g []
		  (defer (print "cleanup"))
		  (error "failed"))
		(g)
	`)
	if err == nil || !strings.Contains(err.Error(), "failed") {
		t.Fatalf("expected the body's error, got %v", err)
	}

	if got := out.String(); got != "cleanup" {
		t.Fatalf("defer should run on error, got %q", got)
	}
}

func TestDeferInLoopRunsOncePerCall(t *testing.T) {
	e, _, out := setup(t)

	_, err := eval(t, e, `
		(defn g []
		  (loop [i 0]
		    (defer (print "d"))
		    (if (< i 3) (recur (inc i)) i)))
		(g)
		(g)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if got := out.String(); got != "dd" {
		t.Fatalf("expected one deferred run per call, got %q", got)
	}
}

func TestChannels(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `
		(def ch (chan))
		(go (send! ch 1) (send! ch 2) (send! ch 3) (close! ch))
		[(recv! ch) (recv! ch) (recv! ch) (recv! ch)]
	`, `[1 2 3 nil]`)

	expect(t, e, `(recv! (chan 1) 10)`, `:timeout`)

	expect(t, e, `
		(def quiet (chan))
		(select! [quiet (fn [v] :value)] [:timeout 20 (fn [] :timed-out)])
	`, `:timed-out`)
}

func TestConcurrentSwaps(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `
		(def n (atom 0))
		(def tasks (map (fn [_] (go (swap! n inc))) (range 100)))
		(await (all tasks))
		@n
	`, `100`)
}

func TestParallelMapOrder(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(pmap (fn [x] (sleep (- 50 (* 10 x))) (* x x)) [1 2 3 4])`, `[1 4 9 16]`)
	expect(t, e, `(pfilter odd? (range 10))`, `[1 3 5 7 9]`)
	expect(t, e, `(preduce + 0 (range 101))`, `5050`)
	expect(t, e, `(pmap (fn [[k v]] v) {:a 1 :b 2})`, `[1 2]`)
	expect(t, e, `({:a 1 :b 2} ||> (fn [[k v]] k))`, `[:a :b]`)
}

func TestPromises(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `@(go (+ 1 2))`, `3`)
	expect(t, e, `(await (then (go 20) (fn [v] (+ v 1))))`, `21`)
	expect(t, e, `(error? (await (catch (go (error "x")) (fn [e] e))))`, `true`)

	if f := failure(t, e, `(await (go (error "inner")))`); f.Kind != fault.KindUser {
		t.Fatalf("await should propagate the task's error, got %v", f)
	}
}

func TestScopes(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `
		(def s (make-scope))
		(cancel! s)
		(cancelled? s)
	`, `true`)

	expect(t, e, `
		(def kept (atom nil))
		(with-scope (fn [s] (reset! kept s) (cancelled? s)))
	`, `false`)
	expect(t, e, `(cancelled? @kept)`, `true`)

	expect(t, e, `
		(def outer (make-scope))
		@(scope-go outer :ran)
	`, `:ran`)
}

func TestDefWarnings(t *testing.T) {
	e, w, _ := setup(t)

	expect(t, e, `(def x 1) (def x 2) x`, `2`)
	expect(t, e, `(defn f [] 1) (defn f [] 2) (f)`, `2`)
	expect(t, e, `(def count 3) count`, `3`)
	expect(t, e, `(def tally str/upper) (def tally 4) tally`, `4`)

	w.Lock()
	defer w.Unlock()

	want := []string{
		"redefines variable x",
		"redefines function f",
		"shadows native count",
		"shadows native tally (native str/upper)",
	}
	if len(w.msgs) != len(want) {
		t.Fatalf("expected %d warnings, got %q", len(want), w.msgs)
	}

	for i, msg := range want {
		if !strings.Contains(w.msgs[i], msg) {
			t.Errorf("warning %d: expected %q, got %q", i, msg, w.msgs[i])
		}
	}
}

func TestQuietSuppressesWarnings(t *testing.T) {
	w := &warnings{}

	e, err := New(Options{Quiet: true, Warn: w.add})
	if err != nil {
		t.Fatal(err)
	}

	expect(t, e, `(def x 1) (def x 2) x`, `2`)

	if len(w.msgs) != 0 {
		t.Fatalf("expected no warnings, got %q", w.msgs)
	}
}

func TestMatch(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(match [1 2 3 4] [a b ...rest] rest)`, `(3 4)`)
	expect(t, e, `(match {:name "ann" :age 3} {:name n} n)`, `"ann"`)
	expect(t, e, `(defn double [x] (* 2 x)) (match {:price 4} {:price p => double} p)`, `8`)
	expect(t, e, `(match 2 1 | 2 :small _ :big)`, `:small`)
	expect(t, e, `(match 5 n :when (> n 3) :large _ :other)`, `:large`)

	if f := failure(t, e, `(match 1 2 :two)`); f.Kind != fault.KindMatch {
		t.Fatalf("expected a match fault, got %v", f)
	}
}

func TestMacros(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(when true 1 2)`, `2`)
	expect(t, e, `(unless true 1)`, `nil`)
	expect(t, e, `(cond false 1 (= 1 1) 2 :else 3)`, `2`)
	expect(t, e, `(if-let [x (get {:a 1} :a)] (inc x) :none)`, `2`)
	expect(t, e, `(if-let [x (get {:a 1} :b)] (inc x) :none)`, `:none`)

	expect(t, e, `
		(defmacro swap-pair [a b] `+"`"+`(let [t# ~a] [~b t#]))
		(def t 99)
		(swap-pair t 2)
	`, `[2 99]`)

	expect(t, e, `(macroexpand '(unless c x))`, `(if c nil (do x))`)
}

func TestGensymIsUnique(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(= (gensym "g") (gensym "g"))`, `false`)
}

func TestExpansionDepth(t *testing.T) {
	e, _, _ := setup(t)

	f := failure(t, e, `(defmacro forever [] `+"`"+`(forever)) (forever)`)
	if f.Kind != fault.KindExpansion {
		t.Fatalf("expected an expansion fault, got %v", f)
	}
}

func TestUndefinedSuggestions(t *testing.T) {
	e, _, _ := setup(t)

	if _, err := eval(t, e, `(def counter 1)`); err != nil {
		t.Fatal(err)
	}

	f := failure(t, e, `countr`)
	if f.Kind != fault.KindUndefined {
		t.Fatalf("expected an undefined fault, got %v", f)
	}

	found := false
	for _, s := range f.Suggestions {
		found = found || s == "counter"
	}

	if !found {
		t.Fatalf("expected counter among %q", f.Suggestions)
	}

	if f.Loc.Line != 1 {
		t.Fatalf("expected a location, got %v", f.Loc)
	}
}

func TestLoad(t *testing.T) {
	e, _, _ := setup(t)

	path := filepath.Join(t.TempDir(), "lib.ply")
	if err := os.WriteFile(path, []byte(`(defn triple [x] (* 3 x))`), 0o600); err != nil {
		t.Fatal(err)
	}

	expect(t, e, `(load "`+path+`") (triple 4)`, `12`)
}

func TestCancelledContext(t *testing.T) {
	e, _, _ := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EvalString(ctx, "test", `(loop [i 0] (recur (inc i)))`)
	if err == nil {
		t.Fatal("a cancelled context should stop a loop")
	}
}

func TestRailwayReturnsFirstError(t *testing.T) {
	e, _, _ := setup(t)

	_, err := eval(t, e, `
		(def calls (atom 0))
		(defn check [x] (if (neg? x) (err "negative" x) x))
		(defn g [x] (swap! calls inc) x)
	`)
	if err != nil {
		t.Fatal(err)
	}

	expect(t, e, `(error-message (-5 |>? check |>? g))`, `"negative"`)
	expect(t, e, `(:value (-5 |>? check |>? g))`, `-5`)
	expect(t, e, `@calls`, `0`)

	expect(t, e, `(error? (-5 |> check |> g))`, `true`)
	expect(t, e, `@calls`, `1`)
}

func TestSelectWaitsForTimeout(t *testing.T) {
	e, _, _ := setup(t)

	start := time.Now()

	expect(t, e, `(select! [(chan) (fn [v] v)] [(chan) (fn [v] v)] [:timeout 50 (fn [] :late)])`, `:late`)

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("timeout handler ran after %v", elapsed)
	}
}

func TestMapPatternNeedsKey(t *testing.T) {
	e, _, _ := setup(t)

	expect(t, e, `(match {:age 30} {:name n} n _ :anonymous)`, `:anonymous`)
	expect(t, e, `(match [1] [a b ...rest] :long _ :short)`, `:short`)
	expect(t, e, `(match [1 2] [a b :as whole] whole)`, `[1 2]`)
}
