package eval

type Error interface {
	String() string
	Class() string
}

type Errors []Error

func (ers Errors) ByType() map[string]int {
	retval := make(map[string]int)
	for _, e := range ers {
		retval[e.Class()] += 1
	}
	return retval
}

// Result holds the checks run on one instance and those that failed
type Result struct {
	Checked int
	Errors  Errors
}

func (r *Result) Incorrect() int {
	return len(r.Errors)
}

func (r *Result) Correct() int {
	return r.Checked - r.Incorrect()
}

func (r *Result) Accuracy() float64 {
	if r.Checked == 0 {
		return 0
	}
	return float64(r.Correct()) / float64(r.Checked)
}

type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.Checked += r.Checked
	t.Errors = append(t.Errors, r.Errors...)
	if r.Incorrect() == 0 {
		t.Exact += 1
	}
	t.Population += 1
}

// ExactMatch is the fraction of instances with no failed check
func (t *Total) ExactMatch() float64 {
	if t.Population == 0 {
		return 0
	}
	return float64(t.Exact) / float64(t.Population)
}
