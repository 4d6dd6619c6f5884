// SPDX-License-Identifier: MIT

package generator

import (
	"math/rand"

	"github.com/katalvlaran/matbench/bench"
	"github.com/katalvlaran/matbench/matrix"
)

// definitions maps each operation to its inputs, defining identity and memory factor.
//
// Identities (all residuals relative to the original input unless noted):
//
//	chol            Uᵀ·U ≈ A
//	lu              Pᵀ·L·U ≈ A          (equivalently P·A ≈ L·U for a permutation P)
//	qr              Q·R ≈ A
//	svd             U·S·Vᵀ ≈ A
//	eigSymm         A·V ≈ V·D, plus ‖VᵀV − I‖ / ‖I‖
//	det             d ≈ det(A), relative to |det(A)|
//	inv, invSPD     A·X ≈ I, relative to ‖I‖
//	add/mult/...    C ≈ reference result, relative to the reference result
//	solveExact      A·x ≈ b, relative to ‖b‖
//	solveOver       Aᵀ(A·x − b) ≈ 0, relative to ‖Aᵀb‖
var definitions = map[bench.OperationKind]definition{
	bench.OpChol:          {inputs: spdInput, identity: cholIdentity, memFactor: 2},
	bench.OpLU:            {inputs: squareInputs(1), identity: luIdentity, memFactor: 4},
	bench.OpQR:            {inputs: squareInputs(1), identity: qrIdentity, memFactor: 6},
	bench.OpSVD:           {inputs: squareInputs(1), identity: svdIdentity, memFactor: 6},
	bench.OpEigSymm:       {inputs: symmetricInput, identity: eigIdentity, extra: eigOrthogonality, memFactor: 4},
	bench.OpDet:           {inputs: squareInputs(1), identity: detIdentity, memFactor: 2},
	bench.OpInv:           {inputs: squareInputs(1), identity: invIdentity, memFactor: 3},
	bench.OpInvSymmPosDef: {inputs: spdInput, identity: invIdentity, memFactor: 3},
	bench.OpAdd:           {inputs: squareInputs(2), identity: refIdentity(bench.OpAdd), memFactor: 3},
	bench.OpMult:          {inputs: squareInputs(2), identity: refIdentity(bench.OpMult), memFactor: 3},
	bench.OpMultTransA:    {inputs: squareInputs(2), identity: refIdentity(bench.OpMultTransA), memFactor: 3},
	bench.OpScale:         {inputs: squareInputs(1), identity: refIdentity(bench.OpScale), memFactor: 2},
	bench.OpSolveExact:    {inputs: systemInputs(false), identity: solveExactIdentity, memFactor: 3},
	bench.OpSolveOver:     {inputs: systemInputs(true), identity: solveOverIdentity, memFactor: 5},
	bench.OpTranspose:     {inputs: squareInputs(1), identity: refIdentity(bench.OpTranspose), memFactor: 2},
}

// ---------- inputs ----------

// squareInputs draws count independent n×n matrices, in order.
func squareInputs(count int) inputsFunc {
	return func(rng *rand.Rand, n int, o Options) ([]*matrix.Dense, error) {
		out := make([]*matrix.Dense, count)
		for i := range out {
			m, err := matrix.Random(rng, n, n, o.low, o.high)
			if err != nil {
				return nil, err
			}
			out[i] = m
		}
		return out, nil
	}
}

// spdInput draws B and returns Bᵀ·B + n·I.
func spdInput(rng *rand.Rand, n int, o Options) ([]*matrix.Dense, error) {
	b, err := matrix.Random(rng, n, n, o.low, o.high)
	if err != nil {
		return nil, err
	}
	a, err := matrix.MulTransA(b, b)
	if err != nil {
		return nil, err
	}
	raw := a.Raw()
	for i := 0; i < n; i++ {
		raw[i*n+i] += float64(n)
	}
	// symmetrize exactly so libraries that check symmetry bitwise accept it
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			raw[j*n+i] = raw[i*n+j]
		}
	}

	return []*matrix.Dense{a}, nil
}

// symmetricInput draws B and returns (B + Bᵀ)/2, exactly symmetric.
func symmetricInput(rng *rand.Rand, n int, o Options) ([]*matrix.Dense, error) {
	b, err := matrix.Random(rng, n, n, o.low, o.high)
	if err != nil {
		return nil, err
	}
	raw := b.Raw()
	var v float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v = (raw[i*n+j] + raw[j*n+i]) / 2
			raw[i*n+j], raw[j*n+i] = v, v
		}
	}

	return []*matrix.Dense{b}, nil
}

// systemInputs draws A (n×n, or ratio·n×n when over) and then b.
func systemInputs(over bool) inputsFunc {
	return func(rng *rand.Rand, n int, o Options) ([]*matrix.Dense, error) {
		rows := n
		if over {
			rows = o.overRatio * n
		}
		a, err := matrix.Random(rng, rows, n, o.low, o.high)
		if err != nil {
			return nil, err
		}
		b, err := matrix.Random(rng, rows, 1, o.low, o.high)
		if err != nil {
			return nil, err
		}
		return []*matrix.Dense{a, b}, nil
	}
}

// ---------- identities ----------

func cholIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	utu, err := matrix.MulTransA(out[0], out[0])
	if err != nil {
		return nil, nil, nil, err
	}
	return utu, in[0], in[0], nil
}

func luIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	lu, err := matrix.Mul(out[0], out[1])
	if err != nil {
		return nil, nil, nil, err
	}
	ptlu, err := matrix.MulTransA(out[2], lu)
	if err != nil {
		return nil, nil, nil, err
	}
	return ptlu, in[0], in[0], nil
}

func qrIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	qr, err := matrix.Mul(out[0], out[1])
	if err != nil {
		return nil, nil, nil, err
	}
	return qr, in[0], in[0], nil
}

// svdIdentity accepts S either as a matrix or as a singular-value vector.
func svdIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	s := out[1]
	if r, c := s.Dims(); (r == 1 || c == 1) && r != c {
		s = matrix.Diag(s.Raw())
	}
	us, err := matrix.Mul(out[0], s)
	if err != nil {
		return nil, nil, nil, err
	}
	usvt, err := matrix.MulTransB(us, out[2])
	if err != nil {
		return nil, nil, nil, err
	}
	return usvt, in[0], in[0], nil
}

func eigIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	d := out[1]
	if r, c := d.Dims(); (r == 1 || c == 1) && r != c {
		d = matrix.Diag(d.Raw())
	}
	av, err := matrix.Mul(in[0], out[0])
	if err != nil {
		return nil, nil, nil, err
	}
	vd, err := matrix.Mul(out[0], d)
	if err != nil {
		return nil, nil, nil, err
	}
	return av, vd, in[0], nil
}

// eigOrthogonality returns ‖VᵀV − I‖_F / ‖I‖_F so a zero V cannot pass.
func eigOrthogonality(_, out []*matrix.Dense) (float64, error) {
	vtv, err := matrix.MulTransA(out[0], out[0])
	if err != nil {
		return 0, err
	}
	id, err := matrix.Identity(vtv.Rows())
	if err != nil {
		return 0, err
	}
	return matrix.Residual(vtv, id, id)
}

func detIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	if r, c := out[0].Dims(); r != 1 || c != 1 {
		return nil, nil, nil, matrix.ErrDimensionMismatch
	}
	d, err := matrix.Det(in[0])
	if err != nil {
		return nil, nil, nil, err
	}
	want := matrix.Diag([]float64{d})
	return out[0], want, want, nil
}

func invIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	ax, err := matrix.Mul(in[0], out[0])
	if err != nil {
		return nil, nil, nil, err
	}
	id, err := matrix.Identity(in[0].Rows())
	if err != nil {
		return nil, nil, nil, err
	}
	return ax, id, id, nil
}

// refIdentity compares the single output against the canonical algebra.
func refIdentity(kind bench.OperationKind) identity {
	return func(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
		var want *matrix.Dense
		switch kind {
		case bench.OpAdd:
			want, err = matrix.Add(in[0], in[1])
		case bench.OpMult:
			want, err = matrix.Mul(in[0], in[1])
		case bench.OpMultTransA:
			want, err = matrix.MulTransA(in[0], in[1])
		case bench.OpScale:
			want, err = matrix.Scale(in[0], bench.ScaleFactor)
		default:
			want, err = matrix.Transpose(in[0])
		}
		if err != nil {
			return nil, nil, nil, err
		}
		return out[0], want, want, nil
	}
}

func solveExactIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	ax, err := matrix.Mul(in[0], out[0])
	if err != nil {
		return nil, nil, nil, err
	}
	return ax, in[1], in[1], nil
}

func solveOverIdentity(in, out []*matrix.Dense) (found, expected, ref *matrix.Dense, err error) {
	ax, err := matrix.Mul(in[0], out[0])
	if err != nil {
		return nil, nil, nil, err
	}
	r, err := matrix.Sub(ax, in[1])
	if err != nil {
		return nil, nil, nil, err
	}
	grad, err := matrix.MulTransA(in[0], r)
	if err != nil {
		return nil, nil, nil, err
	}
	atb, err := matrix.MulTransA(in[0], in[1])
	if err != nil {
		return nil, nil, nil, err
	}
	zero, err := matrix.NewDense(grad.Dims())
	if err != nil {
		return nil, nil, nil, err
	}
	return grad, zero, atb, nil
}
