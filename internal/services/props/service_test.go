package props

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/hoopsquares/squares/internal/common/clock/mocks"
	uuidMocks "github.com/hoopsquares/squares/internal/common/uuid/mocks"
	"github.com/hoopsquares/squares/internal/models"
	propRepo "github.com/hoopsquares/squares/internal/repositories/propbet"
)

const testAdminID = "admin-user-id"

type PropsServiceTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mr        *miniredis.Miniredis
	client    *redis.Client
	props     propRepo.Repository
	mockClock *clockMocks.MockClock
	mockUUID  *uuidMocks.MockUUID
	service   Service
	testNow   time.Time
	uuidCount int
}

func (s *PropsServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	props, err := propRepo.NewRedis(&propRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.props = props

	s.mockClock = clockMocks.NewMockClock(s.ctrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.ctrl)

	s.testNow = time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)
	s.uuidCount = 0

	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()
	s.mockUUID.EXPECT().NewUUID().DoAndReturn(func() string {
		s.uuidCount++
		return fmt.Sprintf("test-uuid-%d", s.uuidCount)
	}).AnyTimes()

	svc, err := NewService(&Config{
		PropRepo:      s.props,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *PropsServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.ctrl.Finish()
}

func TestPropsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PropsServiceTestSuite))
}

// createProp opens a standard two-option pool with a $5 entry fee
func (s *PropsServiceTestSuite) createProp() *models.PropBet {
	out, err := s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    Actor{UserID: testAdminID, IsAdmin: true},
		Question: "Who scores first?",
		EntryFee: 5,
		Options:  []string{"Lions", "Bears"},
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Prop)
	return out.Prop
}

// bet places a stake and requires success
func (s *PropsServiceTestSuite) bet(propID, userID, option string) {
	_, err := s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID:      propID,
		UserID:      userID,
		DisplayName: "Player " + userID,
		Option:      option,
	})
	s.Require().NoError(err)
}

func (s *PropsServiceTestSuite) TestCreateProp() {
	prop := s.createProp()

	s.NotEmpty(prop.ID)
	s.Equal("game-1", prop.GameID)
	s.Equal(models.PropBetStatusOpen, prop.Status)
	s.Equal(int64(5), prop.EntryFee)
	s.Empty(prop.Bets)

	got, err := s.service.GetProp(context.Background(), &GetPropInput{PropID: prop.ID})
	s.Require().NoError(err)
	s.Equal(prop.ID, got.Prop.ID)
}

func (s *PropsServiceTestSuite) TestCreatePropValidation() {
	admin := Actor{UserID: testAdminID, IsAdmin: true}

	// Non-admin cannot create
	_, err := s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    Actor{UserID: "user-1"},
		Question: "Who scores first?",
		EntryFee: 5,
		Options:  []string{"Lions", "Bears"},
	})
	s.ErrorIs(err, ErrNotAuthorized)

	_, err = s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    admin,
		EntryFee: 5,
		Options:  []string{"Lions", "Bears"},
	})
	s.ErrorIs(err, ErrInvalidProp)

	_, err = s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    admin,
		Question: "Who scores first?",
		EntryFee: 0,
		Options:  []string{"Lions", "Bears"},
	})
	s.ErrorIs(err, ErrInvalidProp)

	_, err = s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    admin,
		Question: "Who scores first?",
		EntryFee: 5,
		Options:  []string{"Lions"},
	})
	s.ErrorIs(err, ErrInvalidProp)

	_, err = s.service.CreateProp(context.Background(), &CreatePropInput{
		GameID:   "game-1",
		Actor:    admin,
		Question: "Who scores first?",
		EntryFee: 5,
		Options:  []string{"Lions", "Lions"},
	})
	s.ErrorIs(err, ErrInvalidProp)
}

func (s *PropsServiceTestSuite) TestPlaceBet() {
	prop := s.createProp()

	out, err := s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID:      prop.ID,
		UserID:      "user-1",
		DisplayName: "Alice",
		Option:      "Lions",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Prop.Bets, 1)
	s.Equal("Lions", out.Prop.Bets[0].SelectedOption)
	s.Equal(int64(5), out.Prop.TotalPot())
}

func (s *PropsServiceTestSuite) TestPlaceBetInvalidOption() {
	prop := s.createProp()

	_, err := s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID: prop.ID,
		UserID: "user-1",
		Option: "Packers",
	})
	s.ErrorIs(err, ErrInvalidOption)
}

func (s *PropsServiceTestSuite) TestPlaceBetTwiceRejected() {
	prop := s.createProp()
	s.bet(prop.ID, "user-1", "Lions")

	// A second bet is rejected even on the other option
	_, err := s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID: prop.ID,
		UserID: "user-1",
		Option: "Bears",
	})
	s.ErrorIs(err, ErrAlreadyBet)
}

func (s *PropsServiceTestSuite) TestPlaceBetAfterLockRejected() {
	prop := s.createProp()

	_, err := s.service.LockProp(context.Background(), &LockPropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: testAdminID, IsAdmin: true},
	})
	s.Require().NoError(err)

	_, err = s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID: prop.ID,
		UserID: "user-1",
		Option: "Lions",
	})
	s.ErrorIs(err, ErrNotOpen)
}

func (s *PropsServiceTestSuite) TestPlaceBetPropNotFound() {
	_, err := s.service.PlaceBet(context.Background(), &PlaceBetInput{
		PropID: "missing-prop-id",
		UserID: "user-1",
		Option: "Lions",
	})
	s.ErrorIs(err, ErrPropNotFound)
}

func (s *PropsServiceTestSuite) TestLockProp() {
	prop := s.createProp()

	out, err := s.service.LockProp(context.Background(), &LockPropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: testAdminID, IsAdmin: true},
	})
	s.Require().NoError(err)
	s.Equal(models.PropBetStatusLocked, out.Prop.Status)
}

func (s *PropsServiceTestSuite) TestLockPropNotAuthorized() {
	prop := s.createProp()

	_, err := s.service.LockProp(context.Background(), &LockPropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: "user-1"},
	})
	s.ErrorIs(err, ErrNotAuthorized)
}

func (s *PropsServiceTestSuite) TestSettlePropEvenSplit() {
	prop := s.createProp()

	// Ten $5 bets, five on each side: $50 pot, five winners at $10 each
	for i := 0; i < 5; i++ {
		s.bet(prop.ID, fmt.Sprintf("lion-%d", i), "Lions")
		s.bet(prop.ID, fmt.Sprintf("bear-%d", i), "Bears")
	}

	out, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	})
	s.Require().NoError(err)

	s.Equal(models.PropBetStatusPayout, out.Prop.Status)
	s.Equal("Lions", out.Prop.WinningOption)
	s.Equal(int64(50), out.TotalPot)
	s.Equal(5, out.WinnerCount)
	s.Equal(int64(10), out.PayoutPerWinner)
}

func (s *PropsServiceTestSuite) TestSettlePropSingleWinner() {
	prop := s.createProp()

	s.bet(prop.ID, "user-1", "Lions")
	for i := 0; i < 9; i++ {
		s.bet(prop.ID, fmt.Sprintf("bear-%d", i), "Bears")
	}

	out, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	})
	s.Require().NoError(err)

	s.Equal(int64(50), out.TotalPot)
	s.Equal(1, out.WinnerCount)
	s.Equal(int64(50), out.PayoutPerWinner)
}

func (s *PropsServiceTestSuite) TestSettlePropFloorSplit() {
	prop := s.createProp()

	// $35 pot, three winners: floor(35/3) = 11, remainder stays in the pot
	for i := 0; i < 3; i++ {
		s.bet(prop.ID, fmt.Sprintf("lion-%d", i), "Lions")
	}
	for i := 0; i < 4; i++ {
		s.bet(prop.ID, fmt.Sprintf("bear-%d", i), "Bears")
	}

	out, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	})
	s.Require().NoError(err)

	s.Equal(int64(35), out.TotalPot)
	s.Equal(3, out.WinnerCount)
	s.Equal(int64(11), out.PayoutPerWinner)
	s.LessOrEqual(out.PayoutPerWinner*int64(out.WinnerCount), out.TotalPot)
}

func (s *PropsServiceTestSuite) TestSettlePropNoWinners() {
	prop := s.createProp()

	for i := 0; i < 4; i++ {
		s.bet(prop.ID, fmt.Sprintf("bear-%d", i), "Bears")
	}

	out, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	})
	s.Require().NoError(err)

	s.Equal(int64(20), out.TotalPot)
	s.Equal(0, out.WinnerCount)
	s.Equal(int64(0), out.PayoutPerWinner)
}

func (s *PropsServiceTestSuite) TestSettlePropFromLocked() {
	prop := s.createProp()
	s.bet(prop.ID, "user-1", "Lions")

	_, err := s.service.LockProp(context.Background(), &LockPropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: testAdminID, IsAdmin: true},
	})
	s.Require().NoError(err)

	out, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	})
	s.Require().NoError(err)
	s.Equal(models.PropBetStatusPayout, out.Prop.Status)
}

func (s *PropsServiceTestSuite) TestSettlePropAlreadySettled() {
	prop := s.createProp()
	s.bet(prop.ID, "user-1", "Lions")

	input := &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Lions",
	}

	_, err := s.service.SettleProp(context.Background(), input)
	s.Require().NoError(err)

	_, err = s.service.SettleProp(context.Background(), input)
	s.ErrorIs(err, ErrAlreadySettled)
}

func (s *PropsServiceTestSuite) TestSettlePropInvalidOption() {
	prop := s.createProp()

	_, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: testAdminID, IsAdmin: true},
		WinningOption: "Packers",
	})
	s.ErrorIs(err, ErrInvalidOption)
}

func (s *PropsServiceTestSuite) TestSettlePropNotAuthorized() {
	prop := s.createProp()

	_, err := s.service.SettleProp(context.Background(), &SettlePropInput{
		PropID:        prop.ID,
		Actor:         Actor{UserID: "user-1"},
		WinningOption: "Lions",
	})
	s.ErrorIs(err, ErrNotAuthorized)
}

func (s *PropsServiceTestSuite) TestListProps() {
	first := s.createProp()
	second := s.createProp()

	out, err := s.service.ListProps(context.Background(), &ListPropsInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Props, 2)

	ids := map[string]bool{}
	for _, p := range out.Props {
		ids[p.ID] = true
	}
	s.True(ids[first.ID])
	s.True(ids[second.ID])
}

func (s *PropsServiceTestSuite) TestDeleteProp() {
	prop := s.createProp()

	out, err := s.service.DeleteProp(context.Background(), &DeletePropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: testAdminID, IsAdmin: true},
	})
	s.Require().NoError(err)
	s.True(out.Success)

	_, err = s.service.GetProp(context.Background(), &GetPropInput{PropID: prop.ID})
	s.ErrorIs(err, ErrPropNotFound)
}

func (s *PropsServiceTestSuite) TestDeletePropNotAuthorized() {
	prop := s.createProp()

	_, err := s.service.DeleteProp(context.Background(), &DeletePropInput{
		PropID: prop.ID,
		Actor:  Actor{UserID: "user-1"},
	})
	s.ErrorIs(err, ErrNotAuthorized)
}
