package main

import (
	"context"

	"github.com/jmoon-dev/lunchscout/internal/provider"
	"github.com/jmoon-dev/lunchscout/pkg/types"
)

// demoClient serves a fixed Gangnam-area batch so the whole pipeline can be
// exercised without provider credentials.
type demoClient struct{}

var demoRecords = []types.PlaceRecord{
	{
		Title:       "<b>시골밥상</b>",
		Category:    "한식>백반,가정식",
		Description: "반찬이 정갈하고 점심에 회전율이 좋아요",
		Address:     "서울특별시 강남구 역삼동 678-1",
		RoadAddress: "서울특별시 강남구 테헤란로 123",
		MapX:        "1270292507",
		MapY:        "374997698",
	},
	{
		Title:       "스시히로",
		Category:    "일식>초밥,롤",
		Description: "점심특선 초밥이 빨리 나옴",
		Address:     "서울특별시 강남구 역삼동 701-2",
		RoadAddress: "서울특별시 강남구 강남대로 350",
		MapX:        "1270287000",
		MapY:        "375002000",
		UserRating:  "4.6",
	},
	{
		Title:       "<b>온면옥</b>",
		Category:    "한식>국수,칼국수",
		Description: "웨이팅이 길지만 칼국수가 진국",
		Address:     "서울특별시 강남구 역삼동 689-5",
		RoadAddress: "서울특별시 강남구 논현로 85길 12",
		MapX:        "1270301000",
		MapY:        "374990000",
	},
	{
		Title:       "파스타공방",
		Category:    "양식>파스타,이탈리아음식",
		Description: "혼밥하기 좋은 바 자리",
		Address:     "서울특별시 강남구 역삼동 642-9",
		RoadAddress: "서울특별시 강남구 역삼로 17길 6",
		MapX:        "1270276000",
		MapY:        "375079000",
		UserRating:  "4.2",
	},
	{
		Title:       "홍콩반점",
		Category:    "중식>짜장면,짬뽕",
		Description: "주문하면 음식이 바로 나오는 편",
		Address:     "서울특별시 강남구 역삼동 655-3",
		RoadAddress: "서울특별시 강남구 테헤란로 25길 30",
		MapX:        "1270295500",
		MapY:        "374995100",
	},
}

func (demoClient) Search(_ context.Context, req provider.SearchRequest) ([]types.PlaceRecord, error) {
	records := make([]types.PlaceRecord, len(demoRecords))
	copy(records, demoRecords)

	limit := req.Display
	if limit <= 0 || limit > len(records) {
		limit = len(records)
	}
	return records[:limit], nil
}
