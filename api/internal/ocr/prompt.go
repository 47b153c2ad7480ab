package ocr

// Prompt is sent with every scoreboard image.
const Prompt = `This image is a HYROX race result. Extract the time of every segment below in MM:SS format.

Running: up to 8 runs, in race order.
Stations:
- ski: SkiErg / Ski Erg
- sledPush: Sled Push
- sledPull: Sled Pull
- burpeeBroadJump: Burpee Broad Jump
- rowing: Rowing / Row
- farmersCarry: Farmers Carry
- sandbagLunges: Sandbag Lunges
- wallBall: Wall Balls
Roxzone: total transition time.

Answer with exactly this JSON shape. Use "00:00" for any segment you cannot find:

{
  "running": ["04:30", "04:45", "00:00", "00:00", "00:00", "00:00", "00:00", "00:00"],
  "stations": {
    "ski": "03:20",
    "sledPush": "02:15",
    "sledPull": "02:30",
    "burpeeBroadJump": "03:45",
    "rowing": "04:10",
    "farmersCarry": "02:00",
    "sandbagLunges": "03:30",
    "wallBall": "05:15"
  },
  "roxzone": "08:30"
}

Return only the JSON, no explanation.`
