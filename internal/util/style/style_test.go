package style

import "testing"

func TestSeq(t *testing.T) {
	for _, tc := range []struct {
		ms   []int
		want string
	}{
		{nil, "\033[0m"},
		{[]int{1}, "\033[1m"},
		{[]int{31, 1}, "\033[31;1m"},
		{TrueColor(true, 240, 217, 181), "\033[48;2;240;217;181m"},
		{TrueColor(false, 0, 0, 0), "\033[38;2;0;0;0m"},
	} {
		if got := Seq(tc.ms...); got != tc.want {
			t.Fatalf("Seq(%v): expected = %q, got = %q", tc.ms, tc.want, got)
		}
	}
}
