package anilist

// UserStatsQuery fetches the full statistics payload for one user in a
// single round trip: anime and manga statistics plus the social page
// totals. The result's data object is merged verbatim into the stored
// record's stats.
const UserStatsQuery = `
    query ($userId: Int!) {
        User(id: $userId) {
            statistics {
                anime {
                    count
                    episodesWatched
                    minutesWatched
                    meanScore
                    standardDeviation
                    genres(sort: COUNT_DESC) {
                        genre
                        count
                    }
                    tags(sort: COUNT_DESC) {
                        tag {
                            name
                        }
                        count
                    }
                    voiceActors(sort: COUNT_DESC) {
                        voiceActor {
                            name {
                                full
                            }
                        }
                        count
                    }
                    studios(sort: COUNT_DESC) {
                        studio {
                            name
                        }
                        count
                    }
                    staff(sort: COUNT_DESC) {
                        staff {
                            name {
                                full
                            }
                        }
                        count
                    }
                }
                manga {
                    count
                    chaptersRead
                    volumesRead
                    meanScore
                    standardDeviation
                    genres(sort: COUNT_DESC) {
                        genre
                        count
                    }
                    tags(sort: COUNT_DESC) {
                        tag {
                            name
                        }
                        count
                    }
                    staff(sort: COUNT_DESC) {
                        staff {
                            name {
                                full
                            }
                        }
                        count
                    }
                }
            }
            stats {
                activityHistory {
                    amount
                }
            }
        }
        followersPage: Page {
            pageInfo {
                total
            }
            followers(userId: $userId) {
                id
            }
        }
        followingPage: Page {
            pageInfo {
                total
            }
            following(userId: $userId) {
                id
            }
        }
        threadsPage: Page {
            pageInfo {
                total
            }
            threads(userId: $userId) {
                id
            }
        }
        threadCommentsPage: Page {
            pageInfo {
                total
            }
            threadComments(userId: $userId) {
                id
            }
        }
        reviewsPage: Page {
            pageInfo {
                total
            }
            reviews(userId: $userId) {
                id
            }
        }
    }
`
