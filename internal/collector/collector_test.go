package collector

import (
	"context"
	"errors"
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"he3scope/internal/game"
	"he3scope/internal/model"
)

type fakeReader struct {
	balances    map[common.Address]*big.Int
	failing     map[common.Address]bool
	rewardToken common.Address
	symbols     map[common.Address]string
	earned      map[common.Address]*big.Int
}

func (f *fakeReader) BalanceOf(_ context.Context, token common.Address, _ common.Address) (*big.Int, error) {
	if f.failing[token] {
		return nil, errors.New("rpc timeout")
	}
	if bal, ok := f.balances[token]; ok {
		return bal, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeReader) Decimals(context.Context, common.Address) (uint8, error) {
	return 18, nil
}

func (f *fakeReader) Symbol(_ context.Context, token common.Address) (string, error) {
	return f.symbols[token], nil
}

func (f *fakeReader) RewardTokens(context.Context, common.Address) ([]common.Address, error) {
	return []common.Address{f.rewardToken}, nil
}

func (f *fakeReader) Earned(_ context.Context, farm common.Address, _ common.Address, _ common.Address) (*big.Int, error) {
	if amount, ok := f.earned[farm]; ok {
		return amount, nil
	}
	return big.NewInt(0), nil
}

type fakeResolver struct {
	agents map[string]common.Address
}

func (f *fakeResolver) Resolve(_ context.Context, agentID string) (common.Address, error) {
	addr, ok := f.agents[agentID]
	if !ok {
		return common.Address{}, model.ErrAddressNotFound
	}
	return addr, nil
}

type fakePositions struct {
	liquidity []model.LiquidityPosition
	staking   []model.StakingPosition
	err       error
}

func (f *fakePositions) LiquidityPositions(context.Context, common.Address) ([]model.LiquidityPosition, error) {
	return f.liquidity, f.err
}

func (f *fakePositions) StakingPositions(context.Context, common.Address) ([]model.StakingPosition, error) {
	return f.staking, f.err
}

func baseUnits(whole int64) *big.Int {
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	return new(big.Int).Mul(big.NewInt(whole), scale)
}

func testAssets() Assets {
	he3 := common.HexToAddress("0x0000000000000000000000000000000000000008")
	carbon := common.HexToAddress("0x0000000000000000000000000000000000000002")
	graphite := common.HexToAddress("0x0000000000000000000000000000000000000004")
	return Assets{
		ResourceTokens: map[string]common.Address{
			game.Helium3:  he3,
			game.Carbon:   carbon,
			game.Graphite: graphite,
		},
		PoolShareTokens: map[string]common.Address{
			"wD/C": common.HexToAddress("0x0000000000000000000000000000000000000012"),
		},
		Farms: map[string]common.Address{
			"GRP-farm": common.HexToAddress("0x0000000000000000000000000000000000000022"),
		},
	}
}

func TestResourceBalancesDegradesPerItem(t *testing.T) {
	assets := testAssets()
	reader := &fakeReader{
		balances: map[common.Address]*big.Int{
			assets.ResourceTokens[game.Carbon]: baseUnits(50),
		},
		failing: map[common.Address]bool{
			assets.ResourceTokens[game.Graphite]: true,
		},
	}
	resolver := &fakeResolver{agents: map[string]common.Address{"alpha": common.HexToAddress("0xaa")}}

	c := New(reader, resolver, &fakePositions{}, assets, 4, nil)
	snap, err := c.ResourceBalances(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap[game.Carbon] != 50 {
		t.Fatalf("carbon balance: %v", snap[game.Carbon])
	}
	// The failed graphite fetch degrades to zero without aborting.
	if snap[game.Graphite] != 0 {
		t.Fatalf("graphite should degrade to zero, got %v", snap[game.Graphite])
	}
	if snap[game.Helium3] != 0 {
		t.Fatalf("he3 balance: %v", snap[game.Helium3])
	}
}

func TestHe3BalancePropagatesFetchFailure(t *testing.T) {
	assets := testAssets()
	reader := &fakeReader{
		failing: map[common.Address]bool{assets.ResourceTokens[game.Helium3]: true},
	}
	resolver := &fakeResolver{agents: map[string]common.Address{"alpha": common.HexToAddress("0xaa")}}

	c := New(reader, resolver, &fakePositions{}, assets, 4, nil)
	if _, err := c.He3Balance(context.Background(), "alpha"); err == nil {
		t.Fatalf("expected fetch failure to propagate")
	}
}

func TestCollectUnknownAgentIsFatal(t *testing.T) {
	c := New(&fakeReader{}, &fakeResolver{agents: map[string]common.Address{}}, &fakePositions{}, testAssets(), 4, nil)
	if _, err := c.Collect(context.Background(), "ghost"); !errors.Is(err, model.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestCollectAssemblesSnapshot(t *testing.T) {
	assets := testAssets()
	rewardToken := common.HexToAddress("0x0000000000000000000000000000000000000004")
	reader := &fakeReader{
		balances: map[common.Address]*big.Int{
			assets.ResourceTokens[game.Carbon]: baseUnits(10),
			assets.PoolShareTokens["wD/C"]:     baseUnits(3),
		},
		rewardToken: rewardToken,
		symbols:     map[common.Address]string{rewardToken: game.Graphite},
		earned: map[common.Address]*big.Int{
			assets.Farms["GRP-farm"]: baseUnits(7),
		},
	}
	resolver := &fakeResolver{agents: map[string]common.Address{"alpha": common.HexToAddress("0xaa")}}
	positions := &fakePositions{
		staking: []model.StakingPosition{{FarmID: "GRP-farm", StakedAmount: 3}},
	}

	c := New(reader, resolver, positions, assets, 4, nil)
	snap, err := c.Collect(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Resources[game.Carbon] != 10 {
		t.Fatalf("carbon: %v", snap.Resources[game.Carbon])
	}
	if snap.LPShares["wD/C"] != 3 {
		t.Fatalf("lp share: %v", snap.LPShares["wD/C"])
	}
	if snap.PendingRewards["GRP-farm"] != 7 {
		t.Fatalf("pending reward: %v", snap.PendingRewards["GRP-farm"])
	}
	if snap.RewardTokens["GRP-farm"] != game.Graphite {
		t.Fatalf("reward token symbol: %s", snap.RewardTokens["GRP-farm"])
	}
	if len(snap.StakingPositions) != 1 {
		t.Fatalf("staking positions: %d", len(snap.StakingPositions))
	}
	if snap.CollectedAt.IsZero() {
		t.Fatalf("collected_at not stamped")
	}
}

func TestAssetsCoverage(t *testing.T) {
	assets := testAssets()
	assets.PoolShareTokens["wD/XYZ"] = common.HexToAddress("0x0000000000000000000000000000000000000099")
	assets.Farms["XYZ-farm"] = common.HexToAddress("0x0000000000000000000000000000000000000098")

	unknown, missing := assets.Coverage()

	wantUnknown := []string{"farm XYZ-farm", "pool wD/XYZ"}
	if !reflect.DeepEqual(unknown, wantUnknown) {
		t.Fatalf("unknown assets: %v", unknown)
	}

	missingSet := make(map[string]bool, len(missing))
	for _, id := range missing {
		missingSet[id] = true
	}
	// testAssets configures C, GRP, He3, wD/C, and GRP-farm only.
	for _, id := range []string{"resource wD", "resource Y", "pool wD/He3", "farm He3-stake"} {
		if !missingSet[id] {
			t.Fatalf("expected %s to be reported missing: %v", id, missing)
		}
	}
	for _, id := range []string{"resource C", "pool wD/C", "farm GRP-farm"} {
		if missingSet[id] {
			t.Fatalf("%s is configured but reported missing", id)
		}
	}
}

func TestNormalizeBaseUnitsRoundTrip(t *testing.T) {
	raw, ok := new(big.Int).SetString("123456789012345678901", 10)
	if !ok {
		t.Fatalf("parse raw")
	}

	normalized := NormalizeBaseUnits(raw, 18)
	rescaled := normalized * 1e18

	original, _ := new(big.Float).SetInt(raw).Float64()
	if math.Abs(rescaled-original)/original > 1e-12 {
		t.Fatalf("round-trip drift: %v vs %v", rescaled, original)
	}
}
