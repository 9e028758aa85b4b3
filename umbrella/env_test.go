package umbrella

import (
	"math"
	"testing"

	"github.com/zeu5/bsuite-rl-test/prng"
	"github.com/zeu5/bsuite-rl-test/types"
)

func TestResetInitialState(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := DefaultParams()
	obs, state := env.Reset(prng.NewKey(1), params)

	s := state.(State)
	if s.Time != 0 {
		t.Errorf("expected time 0 after reset, got %d", s.Time)
	}
	if s.TotalRegret != 0 {
		t.Errorf("expected zero regret after reset, got %d", s.TotalRegret)
	}
	if env.IsTerminal(s, params) {
		t.Errorf("reset state should not be terminal")
	}
	if len(obs) != 3 {
		t.Errorf("expected observation of length 3, got %d", len(obs))
	}
	if obs[0] != b2f(s.NeedUmbrella) || obs[1] != b2f(s.HasUmbrella) {
		t.Errorf("observation bits do not match the state")
	}
	if obs[2] != 1 {
		t.Errorf("remaining-fraction signal should be 1 at time 0, got %f", obs[2])
	}
}

func TestResetDeterministic(t *testing.T) {
	env := NewUmbrellaChain(5)
	params := DefaultParams()
	key := prng.NewKey(99)

	obs1, state1 := env.Reset(key, params)
	obs2, state2 := env.Reset(key, params)
	if state1 != state2 {
		t.Errorf("reset is not deterministic: %v vs %v", state1, state2)
	}
	for i := range obs1 {
		if obs1[i] != obs2[i] {
			t.Fatalf("observation differs at index %d: %f vs %f", i, obs1[i], obs2[i])
		}
	}
}

func TestStepDeterministic(t *testing.T) {
	env := NewUmbrellaChain(2)
	params := DefaultParams()
	_, state := env.Reset(prng.NewKey(7), params)
	key := prng.NewKey(8)

	obs1, next1, reward1, done1, info1 := env.Step(key, state, 1, params)
	obs2, next2, reward2, done2, info2 := env.Step(key, state, 1, params)
	if next1 != next2 || reward1 != reward2 || done1 != done2 {
		t.Errorf("step is not deterministic")
	}
	if info1["discount"] != info2["discount"] {
		t.Errorf("discount is not deterministic")
	}
	for i := range obs1 {
		if obs1[i] != obs2[i] {
			t.Fatalf("observation differs at index %d", i)
		}
	}
}

func runChain(t *testing.T, env *UmbrellaChain, params Params, firstAction int, seed uint64) (State, float64, bool) {
	t.Helper()
	key := prng.NewKey(seed)
	_, state := env.Reset(key.Fold(0), params)

	s := state.(State)
	action := firstAction
	var reward float64
	var done bool
	for i := 0; i < params.ChainLength; i++ {
		var next types.KeyedState
		_, next, reward, done, _ = env.Step(key.Fold(uint64(i+1)), s, action, params)
		ns := next.(State)
		if ns.Time != s.Time+1 {
			t.Fatalf("time should increase by exactly 1, went from %d to %d", s.Time, ns.Time)
		}
		if ns.NeedUmbrella != s.NeedUmbrella {
			t.Fatalf("need_umbrella changed mid-episode")
		}
		if i < params.ChainLength-1 {
			if done {
				t.Fatalf("done before the chain completed, at time %d", ns.Time)
			}
			if reward != 1 && reward != -1 {
				t.Fatalf("intermediate reward must be +1 or -1, got %f", reward)
			}
			if ns.TotalRegret != s.TotalRegret {
				t.Fatalf("regret changed before the chain completed")
			}
		}
		s = ns
		action = 0 // ignored after the first step
	}
	return s, reward, done
}

func TestMatchingUmbrella(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 3, MaxStepsInEpisode: 100}

	for seed := uint64(0); seed < 20; seed++ {
		_, state := env.Reset(prng.NewKey(seed).Fold(0), params)
		need := state.(State).NeedUmbrella

		final, reward, done := runChain(t, env, params, b2i(need), seed)
		if !done {
			t.Errorf("seed %d: episode not done after chain_length steps", seed)
		}
		if reward != 1 {
			t.Errorf("seed %d: expected final reward +1 for a match, got %f", seed, reward)
		}
		if final.TotalRegret != 0 {
			t.Errorf("seed %d: expected zero regret for a match, got %d", seed, final.TotalRegret)
		}
		if final.Time != 3 {
			t.Errorf("seed %d: expected time 3, got %d", seed, final.Time)
		}
	}
}

func TestMismatchedUmbrella(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 3, MaxStepsInEpisode: 100}

	for seed := uint64(0); seed < 20; seed++ {
		_, state := env.Reset(prng.NewKey(seed).Fold(0), params)
		need := state.(State).NeedUmbrella

		final, reward, done := runChain(t, env, params, b2i(!need), seed)
		if !done {
			t.Errorf("seed %d: episode not done after chain_length steps", seed)
		}
		if reward != -1 {
			t.Errorf("seed %d: expected final reward -1 for a mismatch, got %f", seed, reward)
		}
		if final.TotalRegret != 2 {
			t.Errorf("seed %d: expected regret 2 for a mismatch, got %d", seed, final.TotalRegret)
		}
	}
}

func TestActionIgnoredAfterFirstStep(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 5, MaxStepsInEpisode: 100}
	key := prng.NewKey(13)

	_, state := env.Reset(key.Fold(0), params)
	_, next, _, _, _ := env.Step(key.Fold(1), state, 1, params)
	s := next.(State)
	if !s.HasUmbrella {
		t.Fatalf("action 1 at time 0 should set has_umbrella")
	}

	// flipping the action afterwards must not drop the umbrella
	_, next, _, _, _ = env.Step(key.Fold(2), s, 0, params)
	if !next.(State).HasUmbrella {
		t.Errorf("has_umbrella changed on a step after the first")
	}
}

func TestOutOfRangeActionIsTruthy(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 5, MaxStepsInEpisode: 100}
	key := prng.NewKey(17)

	_, state := env.Reset(key.Fold(0), params)
	_, next, _, _, _ := env.Step(key.Fold(1), state, 7, params)
	if !next.(State).HasUmbrella {
		t.Errorf("non-zero action should be treated as carrying the umbrella")
	}
}

func TestChainLengthOne(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 1, MaxStepsInEpisode: 100}
	key := prng.NewKey(23)

	_, state := env.Reset(key.Fold(0), params)
	need := state.(State).NeedUmbrella

	// the first step both sets the umbrella and completes the chain
	_, next, reward, done, info := env.Step(key.Fold(1), state, b2i(need), params)
	if !done {
		t.Errorf("episode should be done after one step with chain_length 1")
	}
	if reward != 1 {
		t.Errorf("expected reward +1, got %f", reward)
	}
	if info["discount"] != 0 {
		t.Errorf("expected discount 0 on the terminal step, got %f", info["discount"])
	}
	if next.(State).TotalRegret != 0 {
		t.Errorf("expected zero regret, got %d", next.(State).TotalRegret)
	}
}

func TestMaxStepsTermination(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 200, MaxStepsInEpisode: 5}
	key := prng.NewKey(31)

	_, state := env.Reset(key.Fold(0), params)
	s := state
	for i := 0; i < 5; i++ {
		var done bool
		_, s, _, done, _ = env.Step(key.Fold(uint64(i+1)), s, 0, params)
		if i < 4 && done {
			t.Fatalf("done at time %d, before max_steps_in_episode", i+1)
		}
		if i == 4 && !done {
			t.Fatalf("not done at max_steps_in_episode")
		}
	}
	// terminal is absorbing
	if !env.IsTerminal(s, params) {
		t.Errorf("terminal state not reported as terminal")
	}
}

func TestDiscountSignal(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := Params{ChainLength: 2, MaxStepsInEpisode: 100}
	key := prng.NewKey(37)

	_, state := env.Reset(key.Fold(0), params)
	_, mid, _, done, info := env.Step(key.Fold(1), state, 0, params)
	if done || info["discount"] != 1 {
		t.Errorf("expected active episode with discount 1, got done=%v discount=%f", done, info["discount"])
	}
	_, _, _, done, info = env.Step(key.Fold(2), mid, 0, params)
	if !done || info["discount"] != 0 {
		t.Errorf("expected terminal episode with discount 0, got done=%v discount=%f", done, info["discount"])
	}
}

func TestObservationShapeAndBounds(t *testing.T) {
	env := NewUmbrellaChain(4)
	params := Params{ChainLength: 10, MaxStepsInEpisode: 100}
	key := prng.NewKey(41)

	obs, state := env.Reset(key.Fold(0), params)
	s := state
	for step := 0; ; step++ {
		if len(obs) != 3+env.NDistractor {
			t.Fatalf("expected observation length %d, got %d", 3+env.NDistractor, len(obs))
		}
		if obs[0] != 0 && obs[0] != 1 {
			t.Fatalf("need bit out of {0,1}: %f", obs[0])
		}
		if obs[1] != 0 && obs[1] != 1 {
			t.Fatalf("has bit out of {0,1}: %f", obs[1])
		}
		if obs[2] < 0 || obs[2] > 1 {
			t.Fatalf("remaining fraction out of [0,1]: %f", obs[2])
		}
		for i := 3; i < len(obs); i++ {
			if obs[i] != 0 && obs[i] != 1 {
				t.Fatalf("distractor %d out of {0,1}: %f", i, obs[i])
			}
		}

		var done bool
		obs, s, _, done, _ = env.Step(key.Fold(uint64(step+1)), s, 0, params)
		if done {
			break
		}
	}
	if math.Abs(obs[2]) > 1e-12 {
		t.Errorf("remaining fraction should be exactly 0 when the chain completes, got %f", obs[2])
	}
}

func TestObservationIsIndependentCopy(t *testing.T) {
	env := NewUmbrellaChain(0)
	params := DefaultParams()
	key := prng.NewKey(43)

	obs, state := env.Reset(key, params)
	obs[0] = 42
	again, _ := env.Reset(key, params)
	if again[0] == 42 {
		t.Errorf("observation aliases internal state")
	}
	_ = state
}

func TestSpaces(t *testing.T) {
	env := NewUmbrellaChain(2)
	params := DefaultParams()

	if env.Name() != "UmbrellaChain-bsuite" {
		t.Errorf("wrong name: %s", env.Name())
	}
	if env.NumActions() != 2 {
		t.Errorf("expected 2 actions, got %d", env.NumActions())
	}

	actionSpace := env.ActionSpace(params)
	if !actionSpace.Contains([]float64{0}) || !actionSpace.Contains([]float64{1}) {
		t.Errorf("action space should contain 0 and 1")
	}
	if actionSpace.Contains([]float64{2}) {
		t.Errorf("action space should not contain 2")
	}

	obs, _ := env.Reset(prng.NewKey(5), params)
	if !env.ObservationSpace(params).Contains(obs) {
		t.Errorf("observation not contained in the observation space")
	}

	stateSpace := env.StateSpace(params)
	sample := stateSpace.Sample(prng.NewKey(6))
	if !stateSpace.Contains(sample) {
		t.Errorf("state space sample not contained in the space")
	}
}
